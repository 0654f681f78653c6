package slogpretty_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/linemk/secondhand-shop/internal/lib/logger/handlers/slogpretty"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	opts := slogpretty.PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelInfo}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With(slog.String("op", "workflow.OrderManager.PayOrder"))

	log.Debug("hidden")
	log.Info("order paid", slog.Int64("order_id", 12))

	out := buf.String()
	assert.NotContains(t, out, "hidden", "debug is below the configured level")
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "order paid")
	assert.Contains(t, out, `"order_id": 12`)
	assert.Contains(t, out, `"op": "workflow.OrderManager.PayOrder"`, "attrs from With are kept")
}
