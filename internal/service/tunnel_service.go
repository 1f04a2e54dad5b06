package service

import (
	"context"
	"io"
	"net"
	"net/url"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok/v2"
)

// TunnelConfig 公网隧道配置，把本地服务经 ngrok 暴露给移动端
type TunnelConfig struct {
	Enable    bool   `yaml:"enable" default:"false"`
	AuthToken string `yaml:"auth-token"`
	Domain    string `yaml:"domain"`
}

// TunnelService 维护一条 ngrok 隧道，把公网流量转发到本地 HTTP 端口
type TunnelService interface {
	// Start 建立隧道并开始向 addr 转发
	Start(ctx context.Context, addr string) error

	// Stop 关闭隧道
	Stop(ctx context.Context) error

	// TunnelURL 返回当前公网地址，未启动时为空
	TunnelURL() string
}

type tunnelService struct {
	config   *TunnelConfig
	agent    ngrok.Agent
	listener net.Listener
	url      string
}

// NewTunnelService 创建 TunnelService 实例
func NewTunnelService(config *TunnelConfig) TunnelService {
	return &tunnelService{config: config}
}

// Start 建立隧道并开始向 addr 转发
func (s *tunnelService) Start(ctx context.Context, addr string) error {
	if s.config.AuthToken == "" {
		return errors.New("tunnel auth token is required")
	}

	agent, err := ngrok.NewAgent(ngrok.WithAuthtoken(s.config.AuthToken))
	if err != nil {
		return errors.Wrap(err, "tunnel agent")
	}
	s.agent = agent

	var opts []ngrok.EndpointOption
	if s.config.Domain != "" {
		opts = append(opts, ngrok.WithURL("https://"+s.config.Domain))
	}
	ln, err := agent.Listen(ctx, opts...)
	if err != nil {
		return errors.Wrap(err, "tunnel listen")
	}
	s.listener = ln
	s.url = endpointURL(ln)

	global.Logger.Info("tunnel established", zap.String("url", s.url))

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				global.Logger.Debug("tunnel accept stopped", zap.Error(err))
				return
			}
			go s.forward(conn, addr)
		}
	}()
	return nil
}

// forward 在隧道连接与本地端口之间双向搬运字节，任一方向断开即结束
func (s *tunnelService) forward(conn net.Conn, addr string) {
	defer conn.Close()
	local, err := net.Dial("tcp", addr)
	if err != nil {
		global.Logger.Error("tunnel local dial failed",
			zap.String("addr", addr),
			zap.Error(err),
		)
		return
	}
	defer local.Close()

	done := make(chan struct{}, 2)
	go func() {
		_, _ = io.Copy(local, conn)
		done <- struct{}{}
	}()
	go func() {
		_, _ = io.Copy(conn, local)
		done <- struct{}{}
	}()
	<-done
}

// Stop 关闭隧道
func (s *tunnelService) Stop(ctx context.Context) error {
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			global.Logger.Warn("tunnel close failed", zap.Error(err))
		}
	}
	if s.agent != nil {
		if err := s.agent.Disconnect(); err != nil {
			global.Logger.Warn("tunnel agent disconnect failed", zap.Error(err))
		}
	}
	return nil
}

// TunnelURL 返回当前公网地址，未启动时为空
func (s *tunnelService) TunnelURL() string {
	return s.url
}

// endpointURL 从监听器提取公网 URL，不同 SDK 版本接口形态不同
func endpointURL(ln net.Listener) string {
	if u, ok := ln.(interface{ URL() *url.URL }); ok {
		return u.URL().String()
	}
	if u, ok := ln.(interface{ URL() string }); ok {
		return u.URL()
	}
	return ln.Addr().String()
}

var _ TunnelService = (*tunnelService)(nil)
