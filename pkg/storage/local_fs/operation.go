package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/pkg/fileurl"

	"github.com/pkg/errors"
)

func (p *LocalFS) getSavePath() string {
	savePath := fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
	if p.Config.CustomPath != "" {
		savePath += fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/")
	}
	return savePath
}

// SendFile 保存文件流到本地存储目录
func (p *LocalFS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {

	dstFileKey := p.getSavePath() + fileKey

	if err := fileurl.CreatePath(filepath.Dir(dstFileKey), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(dstFileKey)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if _, err = io.Copy(out, file); err != nil {
		out.Close()
		return "", errors.Wrap(err, "local_fs")
	}
	if err = out.Close(); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dstFileKey, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}

	return dstFileKey, nil
}

// SendContent 保存字节内容到本地存储目录
func (p *LocalFS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {

	dstFileKey := p.getSavePath() + fileKey

	if err := fileurl.CreatePath(filepath.Dir(dstFileKey), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if err := os.WriteFile(dstFileKey, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dstFileKey, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}

	return dstFileKey, nil
}
