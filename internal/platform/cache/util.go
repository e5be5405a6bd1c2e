package cache

import (
	"strings"
	"time"
)

// TimeUntilNextRefresh は次の日次データ更新時刻（locでのhour時）までの期間を返します。
// キャッシュのTTLに使用し、終値の更新後に古いデータが残らないようにします。
func TimeUntilNextRefresh(loc *time.Location, hour int) time.Duration {
	return timeUntilNextRefresh(time.Now(), loc, hour)
}

func timeUntilNextRefresh(now time.Time, loc *time.Location, hour int) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)
	// 本日の更新時刻を過ぎている場合は翌日
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// safe はRedisキーで問題となる文字をエスケープします。
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
