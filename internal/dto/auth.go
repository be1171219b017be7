package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name          string `json:"name"`
	PersonalEmail string `json:"personal_email"`
	UniEmail      string `json:"uni_email"`
	Password      string `json:"password"`
}

// RegisterResponse 注册成功响应
// verification_token 随响应返回（邮件不可达时的兜底，与原前端约定一致）
type RegisterResponse struct {
	Message           string `json:"message"`
	UserID            int64  `json:"user_id"`
	VerificationToken string `json:"verification_token"`
	UniEmail          string `json:"uni_email"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// UserResponse 用户公开信息（绝不包含密码哈希）
type UserResponse struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	UniEmail    string `json:"uni_email"`
	Role        string `json:"role"`
	AvatarColor string `json:"avatar_color"`
}

// VerifyRequest 邮箱验证请求
type VerifyRequest struct {
	Token string `json:"token"`
}

// ResendRequest 重发验证邮件请求（个人邮箱或学校邮箱均可）
type ResendRequest struct {
	Email string `json:"email"`
}

// ResendResponse 重发验证邮件响应
type ResendResponse struct {
	Message           string `json:"message"`
	VerificationToken string `json:"verification_token"`
}
