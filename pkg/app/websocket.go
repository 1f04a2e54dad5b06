package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"golang.org/x/sync/singleflight"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

type LogType string

const (
	WebSocketServerPingInterval         = 25
	WebSocketServerPingWait             = 40
	LogInfo                     LogType = "info"
	LogError                    LogType = "error"
)

func log(t LogType, msg string, fields ...zap.Field) {

	if t == "error" {
		global.Log().Error(msg, fields...)
	} else if t == "info" {
		global.Log().Info(msg, fields...)

	}
}

// WebSocketMessage 客户端消息，帧格式为 "type|payload"
type WebSocketMessage struct {
	Type string `json:"type"` // 操作类型，例如 "NoteModify", "GraphGet"
	Data []byte `json:"data"` // 消息负载
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
	// IsReturnSuccess 为 false 时省略无数据的成功应答
	IsReturnSuccess bool
}

// ResResult WebSocket 响应结构
type ResResult struct {
	Code   int         `json:"code"`
	Status bool        `json:"status"`
	Msg    interface{} `json:"msg,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// ResDetailsResult WebSocket 响应结构（含详情）
type ResDetailsResult struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Msg     interface{} `json:"msg,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// PendingEntry 记录进行中的建议请求
type PendingEntry struct {
	CreatedAt time.Time
}

// WebsocketClient 存储每个 WebSocket 连接及其相关状态
type WebsocketClient struct {
	conn          *gws.Conn
	done          chan struct{}
	returnSuccess bool
	Ctx           *gin.Context
	TraceID       string
	Session       *SessionEntity
	SF            *singleflight.Group // 用于处理并发请求的缓存

	// PendingSuggests 跟踪每个笔记进行中的 AI 建议请求，避免重复提交
	PendingSuggestsMu sync.RWMutex
	PendingSuggests   map[int64]PendingEntry
}

// Context 返回承载本连接的 HTTP 请求上下文
func (c *WebsocketClient) Context() context.Context {
	if c.Ctx == nil || c.Ctx.Request == nil {
		return context.Background()
	}
	return c.Ctx.Request.Context()
}

// TryAcquireSuggest 原子地检查并登记一个笔记的建议请求
// 已存在进行中的请求时返回 false
func (c *WebsocketClient) TryAcquireSuggest(noteID int64) bool {
	c.PendingSuggestsMu.Lock()
	defer c.PendingSuggestsMu.Unlock()
	if c.PendingSuggests == nil {
		c.PendingSuggests = make(map[int64]PendingEntry)
	}
	if _, ok := c.PendingSuggests[noteID]; ok {
		return false
	}
	c.PendingSuggests[noteID] = PendingEntry{CreatedAt: time.Now()}
	return true
}

// ReleaseSuggest 释放笔记的建议请求登记
func (c *WebsocketClient) ReleaseSuggest(noteID int64) {
	c.PendingSuggestsMu.Lock()
	defer c.PendingSuggestsMu.Unlock()
	delete(c.PendingSuggests, noteID)
}

// CleanupExpiredPendingSuggests 清理超时的建议登记，返回清理数量
func (c *WebsocketClient) CleanupExpiredPendingSuggests(timeout time.Duration) int {
	c.PendingSuggestsMu.Lock()
	defer c.PendingSuggestsMu.Unlock()

	cleaned := 0
	now := time.Now()
	for id, entry := range c.PendingSuggests {
		if now.Sub(entry.CreatedAt) > timeout {
			delete(c.PendingSuggests, id)
			cleaned++
		}
	}
	return cleaned
}

// ClearAllPendingSuggests 清空所有建议登记，返回清理数量
func (c *WebsocketClient) ClearAllPendingSuggests() int {
	c.PendingSuggestsMu.Lock()
	defer c.PendingSuggestsMu.Unlock()

	count := len(c.PendingSuggests)
	c.PendingSuggests = make(map[int64]PendingEntry)
	return count
}

// BindAndValid 基于全局验证器的 WebSocket 版本参数绑定和验证工具函数
func (c *WebsocketClient) BindAndValid(data []byte, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	// Step 1: JSON 反序列化
	if err := json.Unmarshal(data, obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: "Invalid message format",
		})
		return false, errs
	}

	// Step 2: 参数验证
	if binding.Validator == nil {
		return true, nil
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {

		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			v := c.Ctx.Value("trans")
			trans, transOk := v.(ut.Translator)

			for _, validationErr := range validationErrors {
				msg := validationErr.Error()
				if transOk {
					msg = validationErr.Translate(trans)
				}
				errs = append(errs, &ValidError{
					Key:     validationErr.Field(),
					Message: msg,
				})
			}
		} else {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
		}
		return false, errs
	}
	return true, nil
}

// PingLoop 定期发送 Ping 消息
func (c *WebsocketClient) PingLoop(PingInterval time.Duration) {
	ticker := time.NewTicker(PingInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			log(LogInfo, "WebsocketServer Client Close Ping")
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				log(LogError, "WebsocketServer Client Ping err ", zap.Error(err))
				return
			}
		}
	}
}

// ToResponse 将结果转换为 JSON 格式并发送给客户端
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action ...string) {

	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}
	if codeObj.HaveDetails() {
		details := strings.Join(codeObj.Details(), ",")
		c.send(actionType, ResDetailsResult{
			Code:    codeObj.Code(),
			Status:  codeObj.Status(),
			Msg:     codeObj.Lang.GetMessage(),
			Data:    codeObj.Data(),
			Details: details,
		})
	} else {
		if c.returnSuccess || actionType != "" || codeObj.Code() > 200 || codeObj.HaveData() {
			c.send(actionType, ResResult{
				Code:   codeObj.Code(),
				Status: codeObj.Status(),
				Msg:    codeObj.Lang.GetMessage(),
				Data:   codeObj.Data(),
			})
		}
	}
	codeObj.Reset()
}

func (c *WebsocketClient) send(actionType string, content any) {
	responseBytes, _ := json.Marshal(content)
	if actionType != "" {
		responseBytes = []byte(fmt.Sprintf(`%s|%s`, actionType, string(responseBytes)))
	}
	c.conn.WriteMessage(gws.OpcodeText, responseBytes)
}

// ------------------------------------> WebsocketServer

type ConnStorage = map[*gws.Conn]*WebsocketClient

type WebsocketServer struct {
	handlers       map[string]func(*WebsocketClient, *WebSocketMessage)
	sessionAuth    func(*WebsocketClient, string) (*SessionEntity, error)
	clients        ConnStorage
	sessionClients map[string]ConnStorage
	mu             sync.Mutex
	up             *gws.Upgrader
	config         *WebsocketServerConfig
}

func NewWebsocketServer(c WebsocketServerConfig) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	wss := WebsocketServer{
		handlers:       make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:        make(ConnStorage),
		sessionClients: make(map[string]ConnStorage),
		config:         &c,
	}
	return &wss
}

func (w *WebsocketServer) Upgrade() {
	w.up = gws.NewUpgrader(w, &w.config.GWSOption)
}

func (w *WebsocketServer) Run() gin.HandlerFunc {

	return func(c *gin.Context) {

		w.Upgrade()
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			log(LogError, "WebsocketServer Start err", zap.Error(err))
			return
		}
		client := &WebsocketClient{conn: socket, done: make(chan struct{}), Ctx: c, SF: new(singleflight.Group)}
		client.returnSuccess = w.config.IsReturnSuccess
		// 握手请求上的 Trace ID，贯穿该连接的所有消息日志
		client.TraceID = c.GetString("trace_id")
		w.AddClient(client)
		log(LogInfo, "WebsocketServer Start", zap.String("type", "ReadLoop"))
		go socket.ReadLoop()
	}
}

// Use 注册消息处理函数
func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// SessionAuthUse 注册会话鉴权函数，入参为客户端提交的原始 Token
func (w *WebsocketServer) SessionAuthUse(handler func(*WebsocketClient, string) (*SessionEntity, error)) {
	w.sessionAuth = handler
}

func (w *WebsocketServer) Authorization(c *WebsocketClient, msg *WebSocketMessage) {

	if w.sessionAuth == nil {
		c.ToResponse(code.ErrorInvalidAuthToken, "Authorization")
		return
	}

	session, err := w.sessionAuth(c, string(msg.Data))
	if err != nil || session == nil {
		log(LogError, "WebsocketServer Authorization FAILD", zap.Error(err))
		c.ToResponse(code.ErrorInvalidAuthToken, "Authorization")
		time.Sleep(2 * time.Second)
		c.conn.WriteClose(1000, []byte("AuthorizationFaild"))
		return
	}

	log(LogInfo, "WebsocketServer Authorization", zap.String("sessionId", session.SessionID), zap.String("client", session.Client))
	c.Session = session
	w.AddSessionClient(c)

	c.ToResponse(code.Success, "Authorization")
	log(LogInfo, "WebsocketServer Session Enters", zap.String("sessionId", session.SessionID), zap.Int("Count", len(w.sessionClients[session.SessionID])))
	go c.PingLoop(w.config.PingInterval)
}

// BroadcastAll 向所有已鉴权客户端推送事件，帧格式与应答一致
func (w *WebsocketServer) BroadcastAll(actionType string, content any) {
	responseBytes, _ := json.Marshal(content)
	if actionType != "" {
		responseBytes = []byte(fmt.Sprintf(`%s|%s`, actionType, string(responseBytes)))
	}

	b := gws.NewBroadcaster(gws.OpcodeText, responseBytes)
	defer b.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	for conn, client := range w.clients {
		if client.Session == nil {
			continue
		}
		_ = b.Broadcast(conn)
	}
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
}

// ClientCount 当前连接的客户端数
func (w *WebsocketServer) ClientCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

func (w *WebsocketServer) AddSessionClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sessionClients[c.Session.SessionID] == nil {
		w.sessionClients[c.Session.SessionID] = make(ConnStorage)
	}
	w.sessionClients[c.Session.SessionID][c.conn] = c
}

func (w *WebsocketServer) RemoveSessionClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessionClients[c.Session.SessionID], c.conn)
	log(LogInfo, "WebsocketServer Client Remove", zap.Int("sessionCount", len(w.clients)))
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	log(LogInfo, "WebsocketServer Client Connect", zap.Int("Count", len(w.clients)))
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {

	c := w.GetClient(conn)

	w.RemoveClient(conn)

	if c == nil {
		return
	}

	if c.Session != nil {
		c.done <- struct{}{}
		log(LogInfo, "WebsocketServer Session Leave", zap.String("sessionId", c.Session.SessionID))
		w.RemoveSessionClient(c)
	}

	log(LogInfo, "WebsocketServer Client Leave", zap.Int("Count", len(w.clients)))

}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	messageStr := message.Data.String()
	index := strings.Index(messageStr, "|")

	var msg WebSocketMessage
	if index != -1 {
		msg.Type = messageStr[:index]
		msg.Data = []byte(messageStr[index+1:])
	} else {
		log(LogError, "WebsocketServer OnMessage", zap.String("type", "Illegal message type"))
		return
	}

	if msg.Type == "Authorization" {
		w.Authorization(c, &msg)
		return
	}

	// 验证会话是否鉴权
	if c.Session == nil {
		c.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	// 执行操作
	handler, exists := w.handlers[msg.Type]
	if exists {
		log(LogInfo, "WebsocketServer OnMessage", zap.String("Type", msg.Type))
		handler(c, &msg)
	} else {
		log(LogError, "WebsocketServer OnMessage", zap.String("msg", "Unknown message type"))
	}
}
