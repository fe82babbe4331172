package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/config"
	pkgerrors "github.com/Pooyash1998/studyplanner/pkg/errors"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(&config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	if err != nil {
		t.Fatalf("连接 miniredis 失败: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_GetSetDel(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, pkgerrors.ErrKeyNotFound) {
		t.Fatalf("不存在的键应返回 ErrKeyNotFound, got %v", err)
	}

	if err := c.Set(ctx, "k", []byte(`[1,2]`)); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != `[1,2]` {
		t.Fatalf("读取结果不符: %q, %v", got, err)
	}

	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, pkgerrors.ErrKeyNotFound) {
		t.Fatalf("删除后应返回 ErrKeyNotFound, got %v", err)
	}
}

func TestClient_CheckRateLimit(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := c.CheckRateLimit(ctx, "rl", 2, time.Minute)
		if err != nil {
			t.Fatalf("第 %d 次限流检查出错: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("第 %d 次请求应放行", i+1)
		}
		time.Sleep(time.Millisecond)
	}

	ok, err := c.CheckRateLimit(ctx, "rl", 2, time.Minute)
	if err != nil {
		t.Fatalf("限流检查出错: %v", err)
	}
	if ok {
		t.Fatal("超过窗口上限后应拒绝")
	}
}
