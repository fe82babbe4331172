package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// Location 模块所处位置：Unassigned 或学期槽位编号（1..N）
type Location int

// Unassigned 未分配区域
const Unassigned Location = 0

const unassignedToken = "unassigned"

// ParseLocation 解析 "unassigned" 或学期编号字符串
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, unassignedToken) {
		return Unassigned, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return Unassigned, fmt.Errorf("%w: %q", ErrInvalidLocation, s)
	}
	return Location(n), nil
}

// SlotLocation 学期编号转位置
func SlotLocation(semesterID int) Location { return Location(semesterID) }

// IsSlot 是否为学期槽位
func (l Location) IsSlot() bool { return l > Unassigned }

func (l Location) String() string {
	if !l.IsSlot() {
		return unassignedToken
	}
	return strconv.Itoa(int(l))
}
