package service

import (
	"strings"

	"github.com/tradeboard/internal/constants"
)

// localizedTradeStatuses 旧版管理端写入的韩文状态 → 规范枚举
var localizedTradeStatuses = map[string]string{
	constants.TradeStatusPendingKo:    constants.TradeStatusPending,
	constants.TradeStatusProcessingKo: constants.TradeStatusProcessing,
	constants.TradeStatusCompletedKo:  constants.TradeStatusCompleted,
	constants.TradeStatusCancelledKo:  constants.TradeStatusCancelled,
}

// NormalizeTradeStatus 把交易状态归一到规范枚举。
// 韩文写法映射到对应枚举，已是规范值的小写后原样返回，
// 其余写法不猜测含义，按原样存储。
func NormalizeTradeStatus(status string) string {
	trimmed := strings.TrimSpace(status)
	if trimmed == "" {
		return trimmed
	}
	if canonical, ok := localizedTradeStatuses[trimmed]; ok {
		return canonical
	}
	lowered := strings.ToLower(trimmed)
	switch lowered {
	case constants.TradeStatusPending,
		constants.TradeStatusProcessing,
		constants.TradeStatusCompleted,
		constants.TradeStatusCancelled:
		return lowered
	}
	return trimmed
}
