package utils

import (
	"errors"
	"strconv"
)

// 工位编号编码规则：
// 3位数：楼层(1位) + 序号(2位)，如 205 -> 楼层2，序号5
// 4位及以上：楼层 = 编号/1000，序号 = 编号%1000，如 2003 -> 楼层2，序号3
var (
	ErrDeskNumberNotNumeric = errors.New("desk number must be numeric")
	ErrDeskNumberTooShort   = errors.New("desk number must be at least 3 digits")
	ErrDeskIndexInvalid     = errors.New("invalid desk index")
)

// ExtractFloorAndIndex 从工位编号解码出楼层和序号
func ExtractFloorAndIndex(deskNumber string) (floor int, index int, err error) {
	dn, convErr := strconv.Atoi(deskNumber)
	if convErr != nil {
		return 0, 0, ErrDeskNumberNotNumeric
	}

	switch {
	case dn >= 1000:
		floor = dn / 1000
		index = dn % 1000
	case dn >= 100:
		floor = dn / 100
		index = dn % 100
	default:
		return 0, 0, ErrDeskNumberTooShort
	}

	if index < 0 || index > 999 {
		return 0, 0, ErrDeskIndexInvalid
	}

	return floor, index, nil
}
