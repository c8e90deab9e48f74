package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"logistics/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Task - периодическая фоновая задача.
type Task interface {
	// Interval возвращает период между запусками.
	Interval() time.Duration
	Do(context.Context) error
	// Name используется в логах.
	Name() string
}

// Worker запускает набор задач: один синхронный прогон при старте,
// затем по тикеру до отмены контекста.
type Worker struct {
	log   logger.Logger
	tasks []Task
	wg    sync.WaitGroup
}

// New выполняет первичный прогон всех задач и запускает их в фоне.
// Ошибка или паника любой задачи на прогреве останавливает старт.
func New(ctx context.Context, log logger.Logger, tasks ...Task) (*Worker, error) {
	w := &Worker{
		log:   log.With(logger.NewField("component", "background")),
		tasks: tasks,
	}

	if err := w.warmUp(ctx); err != nil {
		return nil, err
	}

	for _, task := range tasks {
		w.wg.Add(1)
		go func(task Task) {
			defer w.wg.Done()
			w.loop(ctx, task)
		}(task)
	}

	return w, nil
}

// Wait блокируется до остановки всех задач.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) warmUp(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range w.tasks {
		g.Go(func() error {
			w.log.Info("warming up task", logger.NewField("task", task.Name()))
			return w.run(gctx, task)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to initialize tasks: %w", err)
	}
	return nil
}

func (w *Worker) loop(ctx context.Context, task Task) {
	interval := task.Interval()
	if interval <= 0 {
		w.log.Warn("non-positive interval, periodic execution disabled",
			logger.NewField("task", task.Name()),
			logger.NewField("interval", interval),
		)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("stopping task", logger.NewField("task", task.Name()))
			return
		case <-ticker.C:
			if err := w.run(ctx, task); err != nil {
				w.log.Error("background task failed",
					logger.NewField("task", task.Name()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

func (w *Worker) run(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("background task panic",
				logger.NewField("task", task.Name()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("task %s panicked: %v", task.Name(), r)
		}
	}()

	return task.Do(ctx)
}
