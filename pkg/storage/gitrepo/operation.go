package gitrepo

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/pkg/fileurl"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (p *GitRepo) keyPath(fileKey string) string {
	if p.Config.CustomPath != "" {
		return fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	}
	return fileKey
}

// SendFile 将文件流写入仓库工作区并提交
func (p *GitRepo) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", errors.Wrap(err, "gitrepo")
	}
	return p.SendContent(fileKey, content, modTime)
}

// SendContent 将字节内容写入仓库工作区并提交
func (p *GitRepo) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fileKey = p.keyPath(fileKey)
	fullPath := filepath.Join(p.Config.RepoPath, fileKey)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", errors.Wrap(err, "gitrepo")
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return "", errors.Wrap(err, "gitrepo")
	}
	if !modTime.IsZero() {
		_ = os.Chtimes(fullPath, modTime, modTime)
	}

	if err := p.commit("backup: "+fileKey, modTime); err != nil {
		return "", err
	}
	return fileKey, nil
}

// Delete 从仓库工作区删除文件并提交
func (p *GitRepo) Delete(fileKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	fileKey = p.keyPath(fileKey)
	fullPath := filepath.Join(p.Config.RepoPath, fileKey)
	if !fileurl.IsExist(fullPath) {
		return nil
	}
	if err := os.Remove(fullPath); err != nil {
		return errors.Wrap(err, "gitrepo")
	}
	return p.commit("remove: "+fileKey, time.Time{})
}

func (p *GitRepo) commit(message string, when time.Time) error {
	wt, err := p.Repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "gitrepo")
	}

	status, err := wt.Status()
	if err != nil {
		return errors.Wrap(err, "gitrepo")
	}
	if status.IsClean() {
		return nil
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return errors.Wrap(err, "gitrepo")
	}

	if when.IsZero() {
		when = time.Now()
	}
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  p.Config.AuthorName,
			Email: p.Config.AuthorEmail,
			When:  when,
		},
	})
	if err != nil {
		return errors.Wrap(err, "gitrepo")
	}

	if p.Config.IsPush && p.Config.RemoteURL != "" {
		err = p.Repo.Push(&git.PushOptions{Auth: p.Config.auth()})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			p.logger.Warn("Push to backup remote failed",
				zap.String(logger.FieldFileKey, message),
				zap.Error(err),
			)
		}
	}
	return nil
}
