// Package apiclient — типизированные запросы к REST API площадки.
// Любой сбой транспорта или ответа приводится к ошибкам из apperr.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/linemk/secondhand-shop/internal/apperr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/linemk/secondhand-shop/internal/apiclient"
	codeOK     = 200
)

// Client ходит в API по базовому адресу вида http://host:8080/api.
type Client struct {
	log        *slog.Logger
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// New создаёт клиента. Таймаут целиком на стороне транспорта.
func New(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 20,
			},
		},
		tracer: otel.Tracer(tracerName),
	}
}

// envelope — обёртка каждого ответа: {code, message, data}.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// nullable помечает out-список: data: null для него значит «пусто».
type nullable struct{ v any }

// do выполняет запрос и раскладывает data в out (если out != nil).
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	url := c.baseURL + path
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", url),
	)
	logger := c.log.With(slog.String("op", op), slog.String("method", method), slog.String("path", path))

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperr.Protocol(op, 0, fmt.Sprintf("encode request: %v", err))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		span.RecordError(err)
		return apperr.Transport(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("request failed", slog.Any("error", err))
		return apperr.Transport(op, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return apperr.Transport(op, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Code == 0 {
		if resp.StatusCode == http.StatusUnauthorized {
			return apperr.Auth(op, resp.StatusCode, "")
		}
		span.SetStatus(codes.Error, "malformed response")
		logger.Warn("malformed response", slog.Int("status", resp.StatusCode))
		return apperr.Protocol(op, resp.StatusCode, "")
	}

	if env.Code != codeOK {
		err := classify(op, env.Code, env.Message)
		span.SetStatus(codes.Error, err.Error())
		logger.Info("request rejected", slog.Int("code", env.Code), slog.String("message", env.Message))
		return err
	}

	if out == nil {
		return nil
	}
	target, allowNull := out, false
	if n, ok := out.(nullable); ok {
		target, allowNull = n.v, true
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		if allowNull {
			return nil
		}
		return apperr.Protocol(op, env.Code, "response has no data")
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		logger.Warn("failed to decode data", slog.Any("error", err))
		return apperr.Protocol(op, env.Code, "")
	}
	return nil
}

// сообщения, которыми сервис заказов отвечает на недопустимый переход статуса
var stateMessages = []string{"cannot be paid", "cannot be cancelled", "cannot be shipped", "cannot be finished"}

func classify(op string, code int, message string) error {
	switch {
	case code == http.StatusUnauthorized:
		return apperr.Auth(op, code, message)
	case code == http.StatusConflict:
		return apperr.InvalidState(op, code, message)
	}
	lower := strings.ToLower(message)
	for _, m := range stateMessages {
		if strings.Contains(lower, m) {
			return apperr.InvalidState(op, code, message)
		}
	}
	return apperr.Protocol(op, code, message)
}
