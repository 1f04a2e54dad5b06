package storage

import (
	"io"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/storage/aliyun_oss"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/storage/aws_s3"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/storage/cloudflare_r2"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/storage/gitrepo"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/storage/local_fs"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/storage/webdav"
)

type Type = string
type CloudType = Type

const OSS CloudType = "oss"
const R2 CloudType = "r2"
const S3 CloudType = "s3"
const LOCAL Type = "localfs"
const WebDAV CloudType = "webdav"
const Git Type = "git"

var StorageTypeMap = map[Type]bool{
	OSS:    true,
	R2:     true,
	S3:     true,
	LOCAL:  true,
	WebDAV: true,
	Git:    true,
}

var CloudStorageTypeMap = map[Type]bool{
	OSS: true,
	R2:  true,
	S3:  true,
}

// Config Unified storage configuration
type Config struct {
	Type Type `yaml:"type"`

	// Common settings
	IsEnabled  bool   `yaml:"is-enable"`
	CustomPath string `yaml:"custom-path"`

	// Cloud Storage (S3/OSS/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"` // WebDAV specific path if needed

	// Local FS
	SavePath       string `yaml:"save-path"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable"`

	// Git snapshot repository
	RepoPath    string `yaml:"repo-path"`
	RemoteURL   string `yaml:"remote-url"`
	Branch      string `yaml:"branch"`
	AuthorName  string `yaml:"author-name"`
	AuthorEmail string `yaml:"author-email"`
	IsPush      bool   `yaml:"is-push"`
}

type Storager interface {
	SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error)
	SendContent(pathKey string, content []byte, modTime time.Time) (string, error)
	Delete(pathKey string) error
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	cType := config.Type
	if cType == LOCAL {
		cfg := &local_fs.Config{
			IsEnabled:      config.IsEnabled,
			HttpfsIsEnable: config.HttpfsIsEnable,
			SavePath:       config.SavePath,
			CustomPath:     config.CustomPath,
		}
		return local_fs.NewClient(cfg)
	} else if cType == OSS {
		cfg := &aliyun_oss.Config{
			IsEnabled:       config.IsEnabled,
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		}
		return aliyun_oss.NewClient(cfg)
	} else if cType == R2 {
		cfg := &cloudflare_r2.Config{
			IsEnabled:       config.IsEnabled,
			AccountId:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		}
		return cloudflare_r2.NewClient(cfg)
	} else if cType == S3 {
		cfg := &aws_s3.Config{
			IsEnabled:       config.IsEnabled,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		}
		return aws_s3.NewClient(cfg)
	} else if cType == WebDAV {
		cfg := &webdav.Config{
			IsEnabled:  config.IsEnabled,
			Endpoint:   config.Endpoint,
			Path:       config.Path,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		}
		return webdav.NewClient(cfg)
	} else if cType == Git {
		cfg := &gitrepo.Config{
			IsEnabled:   config.IsEnabled,
			RepoPath:    config.RepoPath,
			RemoteURL:   config.RemoteURL,
			Branch:      config.Branch,
			User:        config.User,
			Password:    config.Password,
			AuthorName:  config.AuthorName,
			AuthorEmail: config.AuthorEmail,
			IsPush:      config.IsPush,
			CustomPath:  config.CustomPath,
		}
		return gitrepo.NewClient(cfg)
	}
	return nil, code.ErrorInvalidStorageType
}
