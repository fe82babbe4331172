// Package llm 封装外部大模型调用，对上层只暴露一次性补全接口
package llm

import (
	"context"
	"errors"
)

// Request 单次补全请求
type Request struct {
	APIKey       string
	Model        string
	SystemPrompt string
	Prompt       string
	Temperature  float64
}

// Client 补全客户端：返回模型输出的原始文本
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

var (
	ErrRequestFailed       = errors.New("请求外部模型失败")
	ErrUpstreamStatus      = errors.New("外部模型返回错误状态")
	ErrMalformedResponse   = errors.New("外部模型响应格式错误")
	ErrEmptyCompletion     = errors.New("外部模型未返回内容")
	ErrUnsupportedProvider = errors.New("不支持的模型提供方")
)
