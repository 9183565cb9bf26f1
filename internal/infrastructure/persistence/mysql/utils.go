package mysql

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// parseID 自增主键只接受正整数的十进制字符串
func parseID(id string) (uint, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// likeEscaper LIKE通配符转义（MySQL默认转义符为反斜杠）
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 字面子串 → LIKE模式
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
