package state

import "testing"

func TestManager_States(t *testing.T) {
	m := NewManager()
	const userID = int64(1)

	if got := m.GetUserState(userID); got != None {
		t.Errorf("initial state = %q, want none", got)
	}

	m.SetUserState(userID, WaitingForGlucose)
	if got := m.GetUserState(userID); got != WaitingForGlucose {
		t.Errorf("state = %q, want %q", got, WaitingForGlucose)
	}

	m.ClearUserState(userID)
	if got := m.GetUserState(userID); got != None {
		t.Errorf("state after clear = %q, want none", got)
	}

	m.SetUserState(userID, WaitingForBarcode)
	if got := m.GetUserState(2); got != None {
		t.Errorf("other user state = %q, want none", got)
	}
}

func TestManager_TempData(t *testing.T) {
	m := NewManager()
	const userID = int64(1)

	if _, ok := m.GetTempData(userID, "glucose"); ok {
		t.Error("expected no temp data initially")
	}

	m.SetTempData(userID, "glucose", 150.0)
	value, ok := m.GetTempData(userID, "glucose")
	if !ok {
		t.Fatal("temp data missing after set")
	}
	if value.(float64) != 150.0 {
		t.Errorf("value = %v, want 150", value)
	}

	m.SetTempData(userID, "glucose", 180.0)
	value, _ = m.GetTempData(userID, "glucose")
	if value.(float64) != 180.0 {
		t.Errorf("value = %v, want overwritten 180", value)
	}

	m.ClearTempData(userID)
	if _, ok := m.GetTempData(userID, "glucose"); ok {
		t.Error("expected temp data cleared")
	}
}
