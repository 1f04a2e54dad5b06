package aliyun_oss

import (
	"bytes"
	"io"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/pkg/fileurl"

	oss "github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func (p *OSS) GetBucket(bucketName string) error {
	// Get bucket
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}
	var err error
	p.Bucket, err = p.Client.Bucket(bucketName)
	return err
}

// SendFile 上传文件
func (p *OSS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	if p.Bucket == nil {
		err := p.GetBucket("")
		if err != nil {
			return "", err
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	options := []oss.Option{oss.ContentType(cType)}
	if !modTime.IsZero() {
		options = append(options, oss.Meta("modification-time", modTime.Format(time.RFC3339)))
	}

	err := p.Bucket.PutObject(fileKey, file, options...)
	if err != nil {
		return "", err
	}
	return fileKey, nil
}

// SendContent 上传字节内容
func (p *OSS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {

	if p.Bucket == nil {
		err := p.GetBucket("")
		if err != nil {
			return "", err
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	var options []oss.Option
	if !modTime.IsZero() {
		options = append(options, oss.Meta("modification-time", modTime.Format(time.RFC3339)))
	}

	err := p.Bucket.PutObject(fileKey, bytes.NewReader(content), options...)
	if err != nil {
		return "", err
	}
	return fileKey, nil
}
