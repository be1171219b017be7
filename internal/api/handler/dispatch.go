package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/response"
)

// routeKey 分发键：(endpoint, action, method) 三元组
// 与前端约定保持单一入口 /api，按查询参数选择资源与动作
type routeKey struct {
	endpoint string
	action   string
	method   string
}

// route 分发表条目
type route struct {
	handler   gin.HandlerFunc
	protected bool // true 时先过 JWT 认证
}

// Dispatcher 请求分发器
// 将 (endpoint, action, method) 映射到唯一处理器；未命中一律 404
type Dispatcher struct {
	routes map[routeKey]route
	auth   gin.HandlerFunc
}

// NewDispatcher 构建分发表
func NewDispatcher(h *Handler, auth gin.HandlerFunc) *Dispatcher {
	return &Dispatcher{
		auth: auth,
		routes: map[routeKey]route{
			// ── 认证 ──
			{"auth", "register", http.MethodPost}: {handler: h.Auth.Register},
			{"auth", "login", http.MethodPost}:    {handler: h.Auth.Login},
			{"auth", "verify", http.MethodPost}:   {handler: h.Auth.Verify},
			{"auth", "resend", http.MethodPost}:   {handler: h.Auth.Resend},
			{"auth", "logout", http.MethodPost}:   {handler: h.Auth.Logout, protected: true},

			// ── 商品 ──
			{"marketplace", "items", http.MethodGet}:   {handler: h.Marketplace.Items},
			{"marketplace", "create", http.MethodPost}: {handler: h.Marketplace.Create, protected: true},
			{"marketplace", "rent", http.MethodPost}:   {handler: h.Marketplace.Rent, protected: true},

			// ── 私信 ──
			{"messages", "get", http.MethodGet}:          {handler: h.Message.Get, protected: true},
			{"messages", "send", http.MethodPost}:        {handler: h.Message.Send, protected: true},
			{"messages", "unread_count", http.MethodGet}: {handler: h.Message.UnreadCount, protected: true},

			// ── 定时任务（共享密钥鉴权在处理器内完成）──
			{"cron", "send_reminders", http.MethodGet}: {handler: h.Cron.SendReminders},
		},
	}
}

// Handle 分发入口
func (d *Dispatcher) Handle(c *gin.Context) {
	key := routeKey{
		endpoint: c.Query("endpoint"),
		action:   c.Query("action"),
		method:   c.Request.Method,
	}

	rt, ok := d.routes[key]
	if !ok {
		response.NotFound(c, "Endpoint not found")
		return
	}

	if rt.protected {
		d.auth(c)
		if c.IsAborted() {
			return
		}
	}

	rt.handler(c)
}
