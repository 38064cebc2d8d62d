package auth

import (
	"context"
	"testing"
)

func TestWithAuthRoundTrip(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{ProfileID: 7, FamilyID: 3, SessionID: 11})

	ac, ok := FromContext(ctx)
	if !ok {
		t.Fatal("auth context missing")
	}
	if ac.ProfileID != 7 || ac.FamilyID != 3 || ac.SessionID != 11 {
		t.Errorf("auth context = %+v", ac)
	}
	if FamilyID(ctx) != 3 {
		t.Errorf("FamilyID = %d, want 3", FamilyID(ctx))
	}
	if ProfileID(ctx) != 7 {
		t.Errorf("ProfileID = %d, want 7", ProfileID(ctx))
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Error("expected no auth context")
	}
	if FamilyID(ctx) != 0 || ProfileID(ctx) != 0 {
		t.Error("zero values expected without auth context")
	}
}
