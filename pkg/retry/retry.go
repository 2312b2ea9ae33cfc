package retry

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	maxRetries        = 6
	retryMultiplier   = 2
	retryInitialDelay = time.Millisecond * 100
	// При maxRetries = 6, retryMultiplier = 2, retryInitialDelay = 100ms:
	// 0-ая попытка: 0ms
	// 1-ая попытка: 100ms
	// 2-ая попытка: 200ms
	// 3-я попытка: 400ms
	// 4-ая попытка: 800ms
	// 5-ая попытка: 1600ms
	// 6-ая попытка: 3200ms, потом завершение
)

// Retry выполняет операцию с экспоненциальной задержкой между попытками.
// Возвращает nil, если операция успешна, или последнюю ошибку, если все попытки завершились неудачей.
func Retry(operation func() error) error {
	return RetryContext(context.Background(), operation)
}

// RetryContext работает как Retry, но прекращает попытки при отмене ctx
func RetryContext(ctx context.Context, operation func() error) error {
	delay := retryInitialDelay
	for retryCounter := 0; ; retryCounter++ {
		err := operation()
		if err == nil {
			return nil
		}
		if retryCounter >= maxRetries {
			return err
		}
		log.Errorf("error during retry %d: %v", retryCounter, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		delay *= retryMultiplier
	}
}
