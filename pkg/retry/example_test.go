package retry_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crossred/crossred/pkg/retry"
)

func ExampleRetry() {
	ctx := context.Background()
	attempts := 0

	err := retry.Retry(ctx, 3, 10*time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return retry.Retryable(fmt.Errorf("temporary failure (attempt %d)", attempts))
		}
		return nil
	})

	if err != nil {
		fmt.Println("Failed:", err)
	} else {
		fmt.Println("Success after", attempts, "attempts")
	}
	// Output:
	// Success after 3 attempts
}

func ExampleRetryWithBackoff() {
	ctx := context.Background()

	err := retry.RetryWithBackoff(ctx, func() error {
		return nil
	})

	if err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Success")
	}
	// Output:
	// Success
}

func ExampleRetryableError() {
	ctx := context.Background()
	networkErr := errors.New("connection refused")

	err := retry.Retry(ctx, 2, 10*time.Millisecond, func() error {
		return retry.Retryable(networkErr)
	})

	if errors.Is(err, networkErr) {
		fmt.Println("Failed due to network error")
	}
	// Output:
	// Failed due to network error
}

func ExampleRetryable() {
	ctx := context.Background()
	attempts := 0

	err := retry.RetryWithBackoff(ctx, func() error {
		attempts++
		if attempts < 2 {
			return retry.Retryable(errors.New("temporary failure"))
		}
		return nil
	})

	if err == nil {
		fmt.Println("Success")
	}
	// Output:
	// Success
}
