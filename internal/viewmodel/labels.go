package viewmodel

import (
	"fmt"

	"github.com/linemk/secondhand-shop/internal/apperr"
	"github.com/linemk/secondhand-shop/internal/domain/models"
)

const (
	LocaleEN = "en"
	LocaleZH = "zh"
)

var statusLabels = map[string]map[models.OrderStatus]string{
	LocaleEN: {
		models.StatusPending:   "pending",
		models.StatusPaid:      "paid",
		models.StatusShipped:   "shipped",
		models.StatusCompleted: "completed",
		models.StatusCancelled: "cancelled",
	},
	LocaleZH: {
		models.StatusPending:   "待支付",
		models.StatusPaid:      "已支付",
		models.StatusShipped:   "已发货",
		models.StatusCompleted: "已完成",
		models.StatusCancelled: "已取消",
	},
}

var userStatusLabels = map[string][2]string{
	LocaleEN: {"disabled", "active"},
	LocaleZH: {"禁用", "正常"},
}

func table(locale string) map[models.OrderStatus]string {
	if t, ok := statusLabels[locale]; ok {
		return t
	}
	return statusLabels[LocaleEN]
}

// StatusLabel — подпись статуса. Статус вне таблицы — нарушение протокола.
func StatusLabel(s models.OrderStatus, locale string) (string, error) {
	label, ok := table(locale)[s]
	if !ok {
		return "", apperr.Protocol("viewmodel.StatusLabel", 0, fmt.Sprintf("unknown order status %d", int(s)))
	}
	return label, nil
}
