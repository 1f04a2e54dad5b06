// Package gitrepo 将备份归档提交到本地 git 仓库，可选推送远端
package gitrepo

import (
	"sync"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	IsEnabled   bool   `yaml:"is-enable"`
	RepoPath    string `yaml:"repo-path" default:"storage/backup-repo"`
	RemoteURL   string `yaml:"remote-url"`
	Branch      string `yaml:"branch" default:"main"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	AuthorName  string `yaml:"author-name" default:"Momentum Notes"`
	AuthorEmail string `yaml:"author-email" default:"backup@momentum.local"`
	IsPush      bool   `yaml:"is-push"`
	CustomPath  string `yaml:"custom-path"`
}

type GitRepo struct {
	Repo   *git.Repository
	Config *Config
	mu     sync.Mutex
	logger *zap.Logger
}

// Option 配置选项函数类型
type Option func(*GitRepo)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(p *GitRepo) {
		p.logger = logger
	}
}

// NewClient 打开本地快照仓库，不存在时克隆远端或初始化空仓库
func NewClient(conf *Config, opts ...Option) (*GitRepo, error) {
	if conf.AuthorName == "" {
		conf.AuthorName = "Momentum Notes"
	}
	if conf.AuthorEmail == "" {
		conf.AuthorEmail = "backup@momentum.local"
	}

	repo, err := git.PlainOpen(conf.RepoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = initRepo(conf)
	}
	if err != nil {
		return nil, errors.Wrap(err, "gitrepo")
	}

	p := &GitRepo{
		Repo:   repo,
		Config: conf,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func initRepo(conf *Config) (*git.Repository, error) {
	if conf.RemoteURL != "" {
		cloneOpts := &git.CloneOptions{
			URL:          conf.RemoteURL,
			Auth:         conf.auth(),
			SingleBranch: true,
		}
		if conf.Branch != "" {
			cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(conf.Branch)
		}
		repo, err := git.PlainClone(conf.RepoPath, false, cloneOpts)
		if err == nil {
			return repo, nil
		}
		// Empty remote cannot be cloned yet, fall back to a local init
		// with the remote registered for later pushes.
		repo, initErr := git.PlainInit(conf.RepoPath, false)
		if initErr != nil {
			return nil, err
		}
		_, remoteErr := repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{conf.RemoteURL},
		})
		if remoteErr != nil {
			return nil, remoteErr
		}
		return repo, nil
	}
	return git.PlainInit(conf.RepoPath, false)
}

func (c *Config) auth() *http.BasicAuth {
	if c.User == "" && c.Password == "" {
		return nil
	}
	return &http.BasicAuth{
		Username: c.User,
		Password: c.Password,
	}
}
