package domain

import "testing"

func TestAllows_CreatorHasEveryCapability(t *testing.T) {
	task := &Task{ID: "t1", CreatorID: "alice"}

	for _, cap := range []Capability{CapabilityRead, CapabilityUpdate, CapabilityDelete, CapabilityManageGrants} {
		if !Allows("alice", task, nil, cap) {
			t.Fatalf("creator denied %s", cap)
		}
	}
}

func TestAllows_NoGrantNoAccess(t *testing.T) {
	task := &Task{ID: "t1", CreatorID: "alice"}

	for _, cap := range []Capability{CapabilityRead, CapabilityUpdate, CapabilityDelete, CapabilityManageGrants} {
		if Allows("bob", task, nil, cap) {
			t.Fatalf("stranger allowed %s", cap)
		}
	}
}

func TestAllows_GrantCapabilities(t *testing.T) {
	task := &Task{ID: "t1", CreatorID: "alice"}

	cases := []struct {
		name      string
		canRead   bool
		canUpdate bool
		cap       Capability
		want      bool
	}{
		{"read grant allows read", true, false, CapabilityRead, true},
		{"read grant denies update", true, false, CapabilityUpdate, false},
		{"update grant allows update", true, true, CapabilityUpdate, true},
		{"update grant denies delete", true, true, CapabilityDelete, false},
		{"update grant denies manage", true, true, CapabilityManageGrants, false},
		{"empty grant denies read", false, false, CapabilityRead, false},
	}

	for _, tc := range cases {
		grant := &Grant{ID: "g1", TaskID: "t1", OwnerID: "alice", UserID: "bob", CanRead: tc.canRead, CanUpdate: tc.canUpdate}
		if got := Allows("bob", task, grant, tc.cap); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAllows_IgnoresForeignGrant(t *testing.T) {
	task := &Task{ID: "t1", CreatorID: "alice"}

	// Grant for a different task must not authorize anything here.
	other := &Grant{ID: "g1", TaskID: "t2", UserID: "bob", CanRead: true, CanUpdate: true}
	if Allows("bob", task, other, CapabilityRead) {
		t.Fatalf("grant for another task authorized read")
	}

	// Grant targeting a different user must not leak to the actor.
	foreign := &Grant{ID: "g2", TaskID: "t1", UserID: "carol", CanRead: true, CanUpdate: true}
	if Allows("bob", task, foreign, CapabilityUpdate) {
		t.Fatalf("grant for another user authorized update")
	}
}

func TestAllowsGrantMutation_OwnerOnly(t *testing.T) {
	grant := &Grant{ID: "g1", TaskID: "t1", OwnerID: "alice", UserID: "bob"}

	if !AllowsGrantMutation("alice", grant) {
		t.Fatalf("grant owner denied mutation")
	}
	// Neither the target user nor a stranger may touch the grant; only
	// the recorded owner, independent of who owns the task now.
	if AllowsGrantMutation("bob", grant) {
		t.Fatalf("grant target allowed mutation")
	}
	if AllowsGrantMutation("carol", grant) {
		t.Fatalf("stranger allowed mutation")
	}
	if AllowsGrantMutation("", grant) {
		t.Fatalf("empty actor allowed mutation")
	}
}

func TestNormalizedGrantFlags(t *testing.T) {
	cases := []struct {
		inRead, inUpdate   bool
		outRead, outUpdate bool
	}{
		{false, false, false, false},
		{true, false, true, false},
		{false, true, true, true}, // update implies read at creation
		{true, true, true, true},
	}

	for _, tc := range cases {
		r, u := NormalizedGrantFlags(tc.inRead, tc.inUpdate)
		if r != tc.outRead || u != tc.outUpdate {
			t.Fatalf("NormalizedGrantFlags(%v, %v) = (%v, %v), want (%v, %v)",
				tc.inRead, tc.inUpdate, r, u, tc.outRead, tc.outUpdate)
		}
	}
}
