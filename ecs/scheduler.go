package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// Stage names the point in the frame loop at which a system runs.
type Stage int

const (
	// StageStartup systems run once, in registration order, before the first
	// update. Commands are applied after each one.
	StageStartup Stage = iota
	// StageUpdate systems run every frame. Commands are applied after the last one.
	StageUpdate
)

func (s Stage) String() string {
	switch s {
	case StageStartup:
		return "startup"
	case StageUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          Stage
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// queryExecutor is implemented by *Query[T].
type queryExecutor interface {
	Execute()
}

type scheduledSystem struct {
	system  System
	stage   Stage
	queries []queryExecutor
	stats   *systemStatsInternal
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	storage     *Storage
	startup     []*scheduledSystem
	systems     []*scheduledSystem
	startupDone bool
	frame       int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
	}
}

// Register adds a per-frame system to the scheduler and initializes its Query
// and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, s.schedule(system, StageUpdate))
}

// RegisterStartup adds systems that run exactly once, chained in the given
// order, the first time Once or RunStartup is called. Each startup system
// observes everything spawned by the ones before it.
func (s *Scheduler) RegisterStartup(systems ...System) {
	for _, system := range systems {
		s.startup = append(s.startup, s.schedule(system, StageStartup))
	}
}

func (s *Scheduler) schedule(system System, stage Stage) *scheduledSystem {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	return &scheduledSystem{
		system:  system,
		stage:   stage,
		queries: s.initializeQueries(system),
		stats: &systemStatsInternal{
			name:        systemType.Name(),
			minDuration: time.Duration(1<<63 - 1),
		},
	}
}

func (s *Scheduler) initializeQueries(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	systemType := systemValue.Type()
	var queries []queryExecutor

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + fieldType.Name)
		}
		initMethod.Call([]reflect.Value{
			reflect.ValueOf(s.storage),
		})

		if isQuery {
			if q, ok := field.Addr().Interface().(queryExecutor); ok {
				queries = append(queries, q)
			}
		}
	}

	return queries
}

func (s *Scheduler) run(sys *scheduledSystem, frame *UpdateFrame) {
	start := time.Now()
	for _, q := range sys.queries {
		q.Execute()
	}
	sys.system.Execute(frame)
	duration := time.Since(start)

	stats := sys.stats
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// RunStartup runs the startup stage if it has not run yet. Calling it again
// is a no-op.
func (s *Scheduler) RunStartup() {
	if s.startupDone {
		return
	}
	s.startupDone = true

	frame := newUpdateFrame(0, s.frame, s.storage)
	for _, sys := range s.startup {
		s.run(sys, frame)
		frame.Commands.Flush(s.storage)
	}
}

// StartupDone reports whether the startup stage has run.
func (s *Scheduler) StartupDone() bool {
	return s.startupDone
}

// Once runs the startup stage if needed, then executes all per-frame systems
// once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	s.RunStartup()

	frame := newUpdateFrame(dt, s.frame, s.storage)
	for _, sys := range s.systems {
		s.run(sys, frame)
	}
	frame.Commands.Flush(s.storage)
	s.frame++
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution, startup systems first.
func (s *Scheduler) GetStats() *SchedulerStats {
	all := make([]*scheduledSystem, 0, len(s.startup)+len(s.systems))
	all = append(all, s.startup...)
	all = append(all, s.systems...)

	stats := &SchedulerStats{
		SystemCount: len(all),
		Systems:     make([]SystemStats, len(all)),
	}

	var totalExecs int64
	for i, sys := range all {
		internal := sys.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Stage:          sys.stage,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
