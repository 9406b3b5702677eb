package di

import "placestats/internal/services"

// The user store only needs the recording half of history and daily stats.

func provideHistoryRecorder(history services.HistoryServiceInterface) services.HistoryRecorder {
	return history
}

func provideDailyRecorder(daily services.DailyStatisticServiceInterface) services.DailyRecorder {
	return daily
}
