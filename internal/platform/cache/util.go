package cache

import (
	"time"
)

// RefreshHour は公示データの日次更新が終わる時刻（韓国時間）です。
const RefreshHour = 8

// refreshLocation は更新時刻のタイムゾーンです。tzdataがない環境ではUTC+9の固定ゾーンを使います。
var refreshLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}()

// TimeUntilNextRefresh は now から次の午前8時（韓国時間）までの期間を返します。
func TimeUntilNextRefresh(now time.Time) time.Duration {
	now = now.In(refreshLocation)
	next := time.Date(now.Year(), now.Month(), now.Day(), RefreshHour, 0, 0, 0, refreshLocation)

	// 今日の更新時刻が既に過ぎている場合は翌日を使用
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
