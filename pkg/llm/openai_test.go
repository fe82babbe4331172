package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Pooyash1998/studyplanner/config"
)

func TestOpenAIClient_Complete_Success(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("期望 POST，实际 %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Authorization 头不符: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("请求体解析失败: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"plans\":[]}"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, 5*time.Second)
	out, err := c.Complete(context.Background(), Request{
		APIKey:       "sk-test",
		Model:        "gpt-4o",
		SystemPrompt: "sys",
		Prompt:       "user prompt",
		Temperature:  0.7,
	})
	if err != nil {
		t.Fatalf("不应返回错误: %v", err)
	}
	if out != `{"plans":[]}` {
		t.Errorf("返回内容不符: %q", out)
	}

	if got.Model != "gpt-4o" || got.Temperature != 0.7 {
		t.Errorf("model/temperature 不符: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("消息结构不符: %+v", got.Messages)
	}
	if got.Messages[1].Content != "user prompt" {
		t.Errorf("user 消息不符: %q", got.Messages[1].Content)
	}
}

func TestOpenAIClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"非2xx带错误信息", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key"}}`, ErrUpstreamStatus},
		{"非2xx无法解析", http.StatusInternalServerError, `oops`, ErrUpstreamStatus},
		{"响应不是JSON", http.StatusOK, `not json`, ErrMalformedResponse},
		{"无choices", http.StatusOK, `{"choices":[]}`, ErrEmptyCompletion},
		{"空内容", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, ErrEmptyCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOpenAIClient(srv.URL, 5*time.Second).Complete(context.Background(), Request{APIKey: "k"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望 %v，实际 %v", tt.wantErr, err)
			}
		})
	}
}

func TestOpenAIClient_Complete_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewOpenAIClient(url, time.Second).Complete(context.Background(), Request{APIKey: "k"})
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("期望 ErrRequestFailed，实际 %v", err)
	}
}

func TestNewClient_Provider(t *testing.T) {
	if _, err := NewClient(&config.GeneratorConfig{Provider: "openai", Timeout: time.Second}); err != nil {
		t.Errorf("openai 不应报错: %v", err)
	}
	if _, err := NewClient(&config.GeneratorConfig{Provider: "gemini"}); err != nil {
		t.Errorf("gemini 不应报错: %v", err)
	}
	if _, err := NewClient(&config.GeneratorConfig{Provider: "claude"}); !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("未知提供方应返回 ErrUnsupportedProvider，实际 %v", err)
	}
}
