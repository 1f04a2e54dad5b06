// Package config 定义备份存储的配置结构
// Package config defines backup storage configuration structures
package config

import (
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/storage"
)

// StorageConfig 备份存储配置，每种存储类型一个独立小节
// StorageConfig backup storage configuration, one section per provider
type StorageConfig struct {
	LocalFS      LocalFSConfig `yaml:"local-fs"`
	AliyunOSS    CloudConfig   `yaml:"aliyun-oss"`
	AwsS3        CloudConfig   `yaml:"aws-s3"`
	CloudflareR2 CloudConfig   `yaml:"cloudflare-r2"`
	WebDAV       WebDAVConfig  `yaml:"webdav"`
	Git          GitConfig     `yaml:"git"`
}

// LocalFSConfig 本地文件系统存储配置
type LocalFSConfig struct {
	IsEnabled      bool   `yaml:"is-enable" default:"true"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"false"`
	SavePath       string `yaml:"save-path" default:"storage/backup"`
	CustomPath     string `yaml:"custom-path"`
}

// CloudConfig 对象存储配置（OSS / S3 / R2 通用字段）
type CloudConfig struct {
	IsEnabled       bool   `yaml:"is-enable" default:"false"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 专用
	CustomPath      string `yaml:"custom-path"`
}

// WebDAVConfig WebDAV 存储配置
type WebDAVConfig struct {
	IsEnabled  bool   `yaml:"is-enable" default:"false"`
	Endpoint   string `yaml:"endpoint"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Path       string `yaml:"path"`
	CustomPath string `yaml:"custom-path"`
}

// GitConfig Git 快照仓库配置
type GitConfig struct {
	IsEnabled   bool   `yaml:"is-enable" default:"false"`
	RepoPath    string `yaml:"repo-path" default:"storage/backup-repo"`
	RemoteURL   string `yaml:"remote-url"`
	Branch      string `yaml:"branch" default:"main"`
	AuthorName  string `yaml:"author-name" default:"momentum-graph"`
	AuthorEmail string `yaml:"author-email" default:"backup@localhost"`
	IsPush      bool   `yaml:"is-push" default:"false"`
}

// Resolve 将存储类型映射为对应的存储客户端配置
// 未启用或未知的类型返回 ErrorInvalidStorageType
func (c *StorageConfig) Resolve(storageType string) (*storage.Config, error) {
	switch storageType {
	case storage.LOCAL:
		if !c.LocalFS.IsEnabled {
			return nil, code.ErrorInvalidStorageType.WithDetails("localfs storage is disabled")
		}
		return &storage.Config{
			Type:           storage.LOCAL,
			IsEnabled:      true,
			HttpfsIsEnable: c.LocalFS.HttpfsIsEnable,
			SavePath:       c.LocalFS.SavePath,
			CustomPath:     c.LocalFS.CustomPath,
		}, nil
	case storage.OSS:
		return cloudConfig(storage.OSS, &c.AliyunOSS)
	case storage.S3:
		return cloudConfig(storage.S3, &c.AwsS3)
	case storage.R2:
		return cloudConfig(storage.R2, &c.CloudflareR2)
	case storage.WebDAV:
		if !c.WebDAV.IsEnabled {
			return nil, code.ErrorInvalidStorageType.WithDetails("webdav storage is disabled")
		}
		return &storage.Config{
			Type:       storage.WebDAV,
			IsEnabled:  true,
			Endpoint:   c.WebDAV.Endpoint,
			User:       c.WebDAV.User,
			Password:   c.WebDAV.Password,
			Path:       c.WebDAV.Path,
			CustomPath: c.WebDAV.CustomPath,
		}, nil
	case storage.Git:
		if !c.Git.IsEnabled {
			return nil, code.ErrorInvalidStorageType.WithDetails("git storage is disabled")
		}
		return &storage.Config{
			Type:        storage.Git,
			IsEnabled:   true,
			RepoPath:    c.Git.RepoPath,
			RemoteURL:   c.Git.RemoteURL,
			Branch:      c.Git.Branch,
			AuthorName:  c.Git.AuthorName,
			AuthorEmail: c.Git.AuthorEmail,
			IsPush:      c.Git.IsPush,
		}, nil
	default:
		return nil, code.ErrorInvalidStorageType.WithDetails(storageType)
	}
}

func cloudConfig(storageType string, c *CloudConfig) (*storage.Config, error) {
	if !c.IsEnabled {
		return nil, code.ErrorInvalidStorageType.WithDetails(storageType + " storage is disabled")
	}
	return &storage.Config{
		Type:            storageType,
		IsEnabled:       true,
		Endpoint:        c.Endpoint,
		Region:          c.Region,
		BucketName:      c.BucketName,
		AccessKeyID:     c.AccessKeyID,
		AccessKeySecret: c.AccessKeySecret,
		AccountID:       c.AccountID,
		CustomPath:      c.CustomPath,
	}, nil
}
