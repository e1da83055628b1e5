package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type bindProbe struct {
	Kind   string `json:"kind" binding:"required,coupon_kind"`
	Handle string `json:"handle" binding:"omitempty,affiliate_handle"`
}

func runBindProbe(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterBindingValidators()
	router := gin.New()
	router.POST("/probe", func(c *gin.Context) {
		var req bindProbe
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondBindError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return resp
}

func TestBindingValidatorsAcceptValidPayload(t *testing.T) {
	resp := runBindProbe(t, `{"kind":"Percentage","handle":"bob_01"}`)
	if resp["status_code"].(float64) != 0 {
		t.Fatalf("expected success, got %+v", resp)
	}
}

func TestBindingValidatorsReportJSONFieldNames(t *testing.T) {
	resp := runBindProbe(t, `{"kind":"bogus","handle":"bad handle"}`)
	if resp["status_code"].(float64) != 400 {
		t.Fatalf("expected 400, got %+v", resp)
	}
	data, _ := resp["data"].(map[string]interface{})
	fields, _ := data["fields"].([]interface{})
	if len(fields) != 2 {
		t.Fatalf("expected two field errors, got %+v", data)
	}
	if !strings.HasPrefix(fields[0].(string), "kind ") || !strings.HasPrefix(fields[1].(string), "handle ") {
		t.Fatalf("expected json field names, got %v", fields)
	}
}
