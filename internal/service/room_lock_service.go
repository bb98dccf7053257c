package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go-clinic-scheduling/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// Errors
// =============================================================================

// ErrRoomBusy is returned when the room lock cannot be acquired in time
var ErrRoomBusy = schedule.Conflict("room is busy, retry")

// releaseLockScript deletes the lock key only while it still holds the caller's token.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// =============================================================================
// Constants
// =============================================================================

const (
	// Redis key prefix for per-room booking locks
	RedisRoomLockKeyPrefix = "room:lock:"

	// Timeout for releasing the distributed lock
	redisReleaseTimeout = 2 * time.Second

	// Pause between acquisition attempts while the room is held
	lockRetryInterval = 10 * time.Millisecond

	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// =============================================================================
// Types
// =============================================================================

// RoomLocker serializes booking writes per room.
type RoomLocker interface {
	// Lock blocks until the room is held or the wait budget runs out.
	// The returned func releases the room and must be called exactly once.
	Lock(ctx context.Context, roomID string) (func(), error)
}

// RoomLockService serializes the check-then-insert of a booking per room.
//
// Lock Ordering (to prevent deadlocks):
// 1. Acquire in-process room mutex FIRST
// 2. Then the Redis lock, when Redis is configured
//
// The Redis lock makes several service instances serialize too. When Redis is
// unreachable the service degrades to the in-process mutex; the unique index on
// appointments still rejects identical start times across instances.
type RoomLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	wait        time.Duration

	// Per-room mutex for in-process safety
	roomMu sync.Map // map[string]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// =============================================================================
// Constructor
// =============================================================================

// NewRoomLockService creates a new RoomLockService. redisClient may be nil.
// Starts background goroutine for mutex cleanup.
// Call Stop() during graceful shutdown.
func NewRoomLockService(redisClient *redis.Client, log *logrus.Logger, ttl, wait time.Duration) *RoomLockService {
	svc := &RoomLockService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
		wait:        wait,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// =============================================================================
// Lifecycle Methods
// =============================================================================

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *RoomLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("RoomLockService stopped")
	}
}

// =============================================================================
// Public Methods
// =============================================================================

func (s *RoomLockService) Lock(ctx context.Context, roomID string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()

	mt, err := s.lockRoomMutex(waitCtx, roomID)
	if err != nil {
		return nil, err
	}

	token, err := s.lockDistributed(waitCtx, roomID)
	if err != nil {
		mt.mu.Unlock()
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.unlockDistributed(roomID, token)
			mt.lastUsed.Store(time.Now().Unix())
			mt.mu.Unlock()
		})
	}, nil
}

// =============================================================================
// Private Helper Methods
// =============================================================================

// lockRoomMutex locks the mutex currently registered for roomID. A mutex
// removed by cleanup while we waited on it is released and the lookup retried.
func (s *RoomLockService) lockRoomMutex(ctx context.Context, roomID string) (*mutexWithTimestamp, error) {
	for {
		mt := s.getRoomMutex(roomID)
		if err := s.lockLocal(ctx, mt); err != nil {
			return nil, err
		}
		if current, ok := s.roomMu.Load(roomID); ok && current == mt {
			return mt, nil
		}
		mt.mu.Unlock()
	}
}

func (s *RoomLockService) lockLocal(ctx context.Context, mt *mutexWithTimestamp) error {
	for {
		if mt.mu.TryLock() {
			return nil
		}
		if err := s.pause(ctx); err != nil {
			return err
		}
	}
}

// lockDistributed returns the token stored under the lock key, or "" when
// Redis is disabled or unavailable.
func (s *RoomLockService) lockDistributed(ctx context.Context, roomID string) (string, error) {
	if s.redisClient == nil {
		return "", nil
	}

	key := RedisRoomLockKeyPrefix + roomID
	token := uuid.New().String()

	for {
		ok, err := s.redisClient.SetNX(ctx, key, token, s.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return "", s.busy(ctx, roomID)
			}
			s.log.Warnf("Failed to acquire Redis lock for room %s, using local lock only: %+v", roomID, err)
			return "", nil
		}
		if ok {
			s.log.Debugf("Acquired Redis lock for room %s", roomID)
			return token, nil
		}
		if err := s.pause(ctx); err != nil {
			return "", err
		}
	}
}

func (s *RoomLockService) unlockDistributed(roomID, token string) {
	if s.redisClient == nil || token == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisReleaseTimeout)
	defer cancel()

	key := RedisRoomLockKeyPrefix + roomID
	if err := releaseLockScript.Run(ctx, s.redisClient, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		s.log.Warnf("Failed to release Redis lock for room %s (expires in %v): %+v", roomID, s.ttl, err)
	}
}

func (s *RoomLockService) pause(ctx context.Context) error {
	timer := time.NewTimer(lockRetryInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return s.busy(ctx, "")
	case <-timer.C:
		return nil
	}
}

func (s *RoomLockService) busy(ctx context.Context, roomID string) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if roomID != "" {
		s.log.Debugf("Timed out waiting for room %s", roomID)
	}
	return ErrRoomBusy
}

// getRoomMutex returns mutex for a specific room ID
func (s *RoomLockService) getRoomMutex(roomID string) *mutexWithTimestamp {
	mt, _ := s.roomMu.LoadOrStore(roomID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *RoomLockService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStaleMutexes removes mutexes unused since cutoff.
// TryLock skips rooms being booked; lastUsed is re-checked under the lock.
func (s *RoomLockService) cleanupStaleMutexes(cutoff time.Time) int {
	cutoffUnix := cutoff.Unix()
	var cleaned int

	s.roomMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffUnix {
				s.roomMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
	return cleaned
}
