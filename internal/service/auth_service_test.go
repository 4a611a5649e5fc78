package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/config"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/pkg/jwt"
)

func newTestAuthService() (AuthService, *jwt.Manager) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret-key-at-least-16-chars"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTL = 168 * time.Hour

	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, newTestRepository(), jwtMgr, nil, zap.NewNop())
	return svc, jwtMgr
}

func TestAuth_RegisterFirstUserBecomesAdmin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	first, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("注册首个用户失败: %v", err)
	}
	if first.Role != "admin" {
		t.Errorf("首个用户角色: 期望 admin, 实际 %s", first.Role)
	}

	second, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Bob", Email: "bob@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("注册第二个用户失败: %v", err)
	}
	if second.Role != "member" {
		t.Errorf("第二个用户角色: 期望 member, 实际 %s", second.Role)
	}
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	req := &dto.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("重复注册: 期望 ErrEmailTaken, 实际 %v", err)
	}
}

func TestAuth_LoginSuccess(t *testing.T) {
	svc, jwtMgr := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	tokens, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("登录应返回完整 Token 对")
	}
	if tokens.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn: 期望 900, 实际 %d", tokens.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("解析 AccessToken 失败: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("Token 角色: 期望 admin, 实际 %s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType: 期望 access, 实际 %s", claims.TokenType)
	}
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	cases := []dto.LoginRequest{
		{Email: "alice@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "password123"},
	}
	for _, c := range cases {
		if _, err := svc.Login(ctx, &c); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("登录 %s: 期望 ErrInvalidCredentials, 实际 %v", c.Email, err)
		}
	}
}

func TestAuth_RefreshToken(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	tokens, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	renewed, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("刷新 Token 失败: %v", err)
	}
	if renewed.AccessToken == "" || renewed.RefreshToken == "" {
		t.Fatal("刷新应返回新的 Token 对")
	}

	// Access Token 不可用于刷新
	if _, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken}); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("用 AccessToken 刷新: 期望 ErrInvalidRefresh, 实际 %v", err)
	}
}

func TestAuth_ChangePassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 旧密码错误
	err = svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong-password", NewPassword: "newpassword456",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码错误: 期望 ErrInvalidCredentials, 实际 %v", err)
	}

	// 正常修改
	err = svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		OldPassword: "password123", NewPassword: "newpassword456",
	})
	if err != nil {
		t.Fatalf("修改密码失败: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("旧密码应已失效")
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "newpassword456"}); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
}

func TestAuth_GetCurrentUser(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	created, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	got, err := svc.GetCurrentUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("查询当前用户失败: %v", err)
	}
	if got.Email != "alice@example.com" || got.Name != "Alice" {
		t.Errorf("用户信息不符: %+v", got)
	}

	if _, err := svc.GetCurrentUser(ctx, "missing-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("查询不存在用户: 期望 ErrUserNotFound, 实际 %v", err)
	}
}
