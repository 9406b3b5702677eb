package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	RunOnce() (historyKept, daysKept int)
}
