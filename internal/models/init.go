package models

import (
	"strings"

	"github.com/affiliate-next/internal/logger"
)

// InitDefaultAdmin 初始化默认管理员账号
// 登录凭证由外部认证服务签发，这里只保证存在一个超级管理员主体
func InitDefaultAdmin(username string) error {
	var count int64
	if err := DB.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", "admin").Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "error", err)
		}
		return nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = "admin"
	}
	admin := Admin{
		Username: username,
		IsSuper:  true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	logger.Warnw("default_admin_created", "username", username, "admin_id", admin.ID)
	return nil
}
