package user

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mithrel/scalemate/internal/db"
	"github.com/mithrel/scalemate/internal/settings"
)

// Usage is a read-only snapshot of the usage bookkeeping.
type Usage struct {
	ActsTaken          []Act
	HelpPagesViewed    []string
	HelpCatalogSize    int
	PrevSession        time.Time
	NumSessions        int
	LastReview         time.Time
	AskForReview       bool
	ActionsThisSession int
}

func (u *User) Usage() Usage {
	return Usage{
		ActsTaken:          u.actsTaken.Sorted(),
		HelpPagesViewed:    u.helpPagesViewed.Sorted(),
		HelpCatalogSize:    len(u.catalog),
		PrevSession:        u.prevSession,
		NumSessions:        u.numSessions,
		LastReview:         u.lastReview,
		AskForReview:       u.askForReview,
		ActionsThisSession: u.actionsTakenThisSession,
	}
}

// HasPerformed reports whether act was ever recorded.
func (u *User) HasPerformed(act Act) bool { return u.actsTaken.Contains(act) }

// HasViewedHelpPage reports whether the named page was ever opened.
func (u *User) HasViewedHelpPage(name string) bool { return u.helpPagesViewed.Contains(name) }

// Performed marks act as taken so it is not suggested again. Acts also count
// toward a decent session, but only once SessionSpacing has passed since the
// previous decent session.
func (u *User) Performed(act Act) {
	now := u.now()
	if !u.actsTaken.Contains(act) {
		u.actsTaken[act] = struct{}{}
		u.s.SetString(settings.ActsTaken, u.actsTaken.String())
	}
	u.s.Record(db.EventAct, string(act), "", now)

	if now.After(u.prevSession.Add(u.policy.SessionSpacing)) {
		u.actionsTakenThisSession++
		if u.actionsTakenThisSession == u.policy.ActionsThreshold {
			u.SessionBecameDecent()
		}
	}
}

// SessionBecameDecent counts a session and marks the user eligible for a
// review prompt at the 6th session and at every 12th after that.
func (u *User) SessionBecameDecent() {
	u.numSessions++
	u.s.SetInt(settings.NumSessions, u.numSessions)
	u.prevSession = u.now()
	u.s.SetDate(settings.PrevSession, u.prevSession)
	u.actionsTakenThisSession = 0
	u.s.Record(db.EventSession, strconv.Itoa(u.numSessions), "", u.prevSession)
	u.log.Info("session became decent", zap.Int("num_sessions", u.numSessions))

	if u.numSessions == 6 || (u.numSessions > 0 && u.numSessions%12 == 0) {
		u.setAskForReview(true)
	}
}

func (u *User) setAskForReview(v bool) {
	u.askForReview = v
	u.s.SetBool(settings.AskForReview, v)
}

// PossiblyAskForReview requests a store review when the user is eligible,
// has taken enough distinct acts and was not asked within ReviewSpacing.
// The eligibility flag is cleared immediately; the requester runs after
// ReviewDelay. It reports whether a prompt was scheduled.
func (u *User) PossiblyAskForReview(ctx context.Context) bool {
	u.log.Debug("possibly ask for review")
	if !u.askForReview {
		return false
	}
	if len(u.actsTaken) < u.policy.MinActsForReview {
		return false
	}
	now := u.now()
	if !now.After(u.lastReview.Add(u.policy.ReviewSpacing)) {
		return false
	}

	u.setAskForReview(false)
	u.lastReview = now
	u.s.SetDate(settings.LastReview, now)
	u.s.Record(db.EventReview, "requested", "", now)

	req, log := u.requester, u.log
	if req == nil || u.scheduler == nil {
		log.Warn("review eligible but no requester configured")
		return true
	}
	u.scheduler.After(u.policy.ReviewDelay, func() {
		if err := req.RequestReview(ctx); err != nil {
			log.Warn("review request failed", zap.Error(err))
		}
	})
	return true
}

// VisitedHelpPage records a help page visit. Viewing every page of the
// catalog records ActAllHelpViewed. Names outside a configured catalog only
// count as getting help.
func (u *User) VisitedHelpPage(name string) {
	u.log.Debug("visited help page", zap.String("page", name))
	u.Performed(ActGetHelp)
	if len(u.catalog) > 0 && !u.inCatalog(name) {
		return
	}
	if u.helpPagesViewed.Contains(name) {
		return
	}
	u.helpPagesViewed[name] = struct{}{}
	u.s.SetString(settings.HelpPagesViewed, u.helpPagesViewed.String())
	u.s.Record(db.EventHelp, name, "", u.now())
	u.updateDisplay()
	if len(u.catalog) > 0 && u.viewedCatalogPages() == len(u.catalog) {
		u.Performed(ActAllHelpViewed)
		u.log.Debug("all help pages viewed")
	}
}

// ResetActs forgets every act and viewed help page.
func (u *User) ResetActs() {
	u.actsTaken = ActSet{}
	u.helpPagesViewed = PageSet{}
	u.s.SetMany(map[settings.Name]string{
		settings.ActsTaken:       "",
		settings.HelpPagesViewed: "",
	})
	u.s.Record(db.EventReset, "acts", "", u.now())
	u.updateDisplay()
}

// NoteLaunch stores the running version and reports whether it is newer
// than the version that ran before.
func (u *User) NoteLaunch() bool {
	prev := u.LastRunVersion()
	if u.version == "" {
		return false
	}
	upgraded := prev.Less(u.version)
	u.SetLastRunVersion(u.version)
	return upgraded
}

// NoteDocument stores the digest of the bundled document and reports
// whether it differs from the one seen on a previous run.
func (u *User) NoteDocument(digest string) bool {
	prev := u.s.ReadString(settings.DocumentDigest)
	if prev == digest {
		return false
	}
	u.s.SetString(settings.DocumentDigest, digest)
	return prev != ""
}

func (u *User) inCatalog(name string) bool {
	for _, c := range u.catalog {
		if c == name {
			return true
		}
	}
	return false
}

func (u *User) viewedCatalogPages() int {
	n := 0
	for _, c := range u.catalog {
		if u.helpPagesViewed.Contains(c) {
			n++
		}
	}
	return n
}
