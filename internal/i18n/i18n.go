package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleZH = "zh-CN"
	LocaleTW = "zh-TW"
	LocaleEN = "en-US"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleEN

const localeContextKey = "locale"

var supportedTags = []language.Tag{
	language.AmericanEnglish, // 第一个为匹配失败时的回退
	language.SimplifiedChinese,
	language.TraditionalChinese,
}

var tagLocales = map[language.Tag]string{
	language.AmericanEnglish:    LocaleEN,
	language.SimplifiedChinese:  LocaleZH,
	language.TraditionalChinese: LocaleTW,
}

var matcher = language.NewMatcher(supportedTags)

// NormalizeLocale 将任意语言标记归一到支持的语言
func NormalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	if locale, ok := tagLocales[supportedTags[index]]; ok {
		return locale
	}
	return DefaultLocale
}

// ResolveLocale 解析请求语言：?lang= 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if cached, ok := c.Get(localeContextKey); ok {
		if locale, ok := cached.(string); ok && locale != "" {
			return locale
		}
	}
	raw := c.Query("lang")
	if strings.TrimSpace(raw) == "" {
		raw = c.GetHeader("Accept-Language")
	}
	locale := NormalizeLocale(raw)
	c.Set(localeContextKey, locale)
	return locale
}

// T 翻译消息键，缺失时依次回退默认语言与键本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
