package session

import (
	"testing"
	"time"
)

func TestRecordFailureLocksAtThreshold(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sess := New()

	for i := 1; i < DefaultLockoutPolicy.Threshold; i++ {
		if sess.RecordFailure(now, DefaultLockoutPolicy) {
			t.Fatalf("locked early at attempt %d", i)
		}
	}
	if !sess.RecordFailure(now, DefaultLockoutPolicy) {
		t.Fatal("expected lock on sixth failure")
	}
	if sess.FailedAttempts != 0 {
		t.Fatalf("counter should reset on lock, got %d", sess.FailedAttempts)
	}
	remaining, locked := sess.Locked(now)
	if !locked || remaining != 5*time.Minute {
		t.Fatalf("expected 5m lock, got %v locked=%v", remaining, locked)
	}
}

func TestLockedRemainingDecreasesAndExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(5 * time.Minute)
	sess := Session{ID: "x", LockedUntil: &until}

	first, _ := sess.Locked(now.Add(10 * time.Second))
	second, _ := sess.Locked(now.Add(70 * time.Second))
	if WaitSeconds(second) >= WaitSeconds(first) {
		t.Fatalf("wait should decrease: %d then %d", WaitSeconds(first), WaitSeconds(second))
	}

	if _, locked := sess.Locked(until); locked {
		t.Fatal("lock must end exactly at locked_until")
	}
	sess.ClearExpiredLock(until.Add(time.Second))
	if sess.LockedUntil != nil {
		t.Fatal("expired lock should be cleared")
	}
}

func TestClearExpiredLockKeepsActiveLock(t *testing.T) {
	now := time.Now()
	until := now.Add(time.Minute)
	sess := Session{LockedUntil: &until}
	sess.ClearExpiredLock(now)
	if sess.LockedUntil == nil {
		t.Fatal("active lock must be kept")
	}
}

func TestSignInResetsLockout(t *testing.T) {
	until := time.Now().Add(time.Minute)
	sess := Session{ID: "x", FailedAttempts: 4, LockedUntil: &until}
	sess.SignIn(12)
	if !sess.Authenticated() || sess.UserID != 12 {
		t.Fatalf("expected signed-in session, got %+v", sess)
	}
	if sess.FailedAttempts != 0 || sess.LockedUntil != nil {
		t.Fatalf("lockout state should be reset, got %+v", sess)
	}
}

func TestWaitSecondsRoundsUp(t *testing.T) {
	tests := map[time.Duration]int{
		0:                       0,
		-time.Second:            0,
		time.Millisecond:        1,
		time.Second:             1,
		1500 * time.Millisecond: 2,
		5 * time.Minute:         300,
	}
	for in, want := range tests {
		if got := WaitSeconds(in); got != want {
			t.Fatalf("WaitSeconds(%v) = %d, want %d", in, got, want)
		}
	}
}
