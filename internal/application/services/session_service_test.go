package services

import (
	"testing"
	"time"

	"github.com/GhoshCoop/membergate-go/internal/domain/member"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() security.ClientProfile {
	return security.ClientProfile{
		UserAgent:        "Mozilla/5.0",
		Vendor:           "Google Inc.",
		Platform:         "Linux x86_64",
		ScreenResolution: "1920x1080",
		TimezoneOffset:   -330,
		Language:         "en-IN",
	}
}

func testCredential() *member.Credential {
	return &member.Credential{ID: "mem_001", FullName: "Anil Ghosh", Code: "GCB-7421"}
}

func TestSessionCreateAndCurrent(t *testing.T) {
	repo := newSessionRepo()
	svc := NewSessionService(repo, quietLogger(t), testTracker())

	result := svc.Create(testCredential(), testProfile(), "192.168.1.10")
	require.True(t, result.Success)
	require.NotNil(t, result.Session)
	assert.Equal(t, security.Fingerprint(testProfile()), result.Session.MachineID)
	assert.Equal(t, "Anil Ghosh", result.Session.MemberName)
	assert.True(t, result.Session.LoginTime.Equal(result.Session.LastAccessTime))

	current := svc.Current()
	require.NotNil(t, current)
	assert.Equal(t, result.Session.MachineID, current.MachineID)
	assert.Equal(t, "Anil Ghosh", svc.StoredMemberName())
}

func TestSessionReVerifyReplacesRecord(t *testing.T) {
	repo := newSessionRepo()
	svc := NewSessionService(repo, quietLogger(t), testTracker())

	require.True(t, svc.Create(testCredential(), testProfile(), "192.168.1.10").Success)
	other := &member.Credential{ID: "mem_002", FullName: "Sunita Ghosh", Code: "GCB-3390"}
	require.True(t, svc.Create(other, testProfile(), "192.168.1.10").Success)

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "mem_002", all[0].MemberID)
}

func TestSessionCurrentWithoutVerification(t *testing.T) {
	svc := NewSessionService(newSessionRepo(), quietLogger(t), testTracker())
	assert.Nil(t, svc.Current())
	assert.False(t, svc.Touch())
	assert.False(t, svc.Logout())
}

func TestSessionTouchAdvancesLastAccess(t *testing.T) {
	svc := NewSessionService(newSessionRepo(), quietLogger(t), testTracker())
	created := svc.Create(testCredential(), testProfile(), "192.168.1.10")
	require.True(t, created.Success)

	time.Sleep(5 * time.Millisecond)
	require.True(t, svc.Touch())

	current := svc.Current()
	require.NotNil(t, current)
	assert.True(t, current.LastAccessTime.After(created.Session.LastAccessTime))
	assert.True(t, current.LoginTime.Equal(created.Session.LoginTime))
}

func TestSessionLogoutClearsEverything(t *testing.T) {
	repo := newSessionRepo()
	svc := NewSessionService(repo, quietLogger(t), testTracker())
	require.True(t, svc.Create(testCredential(), testProfile(), "192.168.1.10").Success)

	assert.True(t, svc.Logout())
	assert.Nil(t, svc.Current())
	assert.Empty(t, svc.StoredMemberName())

	all, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, all)

	// second logout has nothing to do
	assert.False(t, svc.Logout())
}
