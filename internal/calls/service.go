package calls

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"click2dial/internal/audit"
	"click2dial/internal/dialerr"
	"click2dial/internal/directory"
	"click2dial/internal/numbering"
	"click2dial/internal/switchcfg"
	"click2dial/internal/telephony"
	"click2dial/pkg/logger"
)

// UserDirectory finds the user placing the call.
type UserDirectory interface {
	User(ctx context.Context, tenantID, userID string) (directory.User, error)
}

// PartyDirectory returns a called party's display name, "" when unknown.
type PartyDirectory interface {
	DisplayName(ctx context.Context, tenantID, partyRef string) (string, error)
}

// SwitchResolver finds switch settings. *switchcfg.Service implements it.
type SwitchResolver interface {
	Resolve(ctx context.Context, tenantID string) (switchcfg.Settings, error)
	Get(ctx context.Context, tenantID, id string) (switchcfg.Settings, error)
}

// Repository stores attempts.
type Repository interface {
	Record(ctx context.Context, a Attempt) error
}

// Guard limits concurrent dials per user. Acquire returns a
// DialInProgress error when the user is at the limit.
type Guard interface {
	Acquire(ctx context.Context, tenantID, userID string) (release func(), err error)
}

// Auditor records dial attempts. *audit.Service implements it.
type Auditor interface {
	LogDial(ctx context.Context, tenantID string, actor audit.Actor, attemptID, message string) error
}

// Deps are the collaborators of Service. Guard and Auditor are optional.
type Deps struct {
	Users      UserDirectory
	Parties    PartyDirectory
	Switches   SwitchResolver
	Originator telephony.Originator
	Attempts   Repository
	Guard      Guard
	Auditor    Auditor
}

// Service places click-to-dial calls.
type Service struct {
	deps  Deps
	clock func() time.Time
}

func NewService(deps Deps) *Service {
	return &Service{deps: deps, clock: time.Now}
}

// PlaceCall rings the actor's own phone and connects it to req.RawNumber.
//
// Every error is a *dialerr.Error. The attempt is recorded whatever the
// outcome; recording failures are logged and never replace the dial result.
func (s *Service) PlaceCall(ctx context.Context, req PlaceCallRequest) (Attempt, error) {
	a := Attempt{
		ID:        uuid.NewString(),
		TenantID:  req.TenantID,
		UserID:    req.Actor.UserID,
		PartyRef:  req.PartyRef,
		RawNumber: req.RawNumber,
		CreatedAt: s.clock().UTC().Truncate(time.Microsecond),
	}

	if err := s.placeCall(ctx, req, &a); err != nil {
		de := dialerr.From(err)
		a.Status = StatusFailed
		a.ErrorKind = de.Kind
		logger.From(ctx).Warn("click-to-dial failed", "attempt_id", a.ID, "kind", de.Kind, "err", de)
		s.record(ctx, req, a)
		return a, de
	}
	a.Status = StatusOriginated
	s.record(ctx, req, a)
	return a, nil
}

func (s *Service) placeCall(ctx context.Context, req PlaceCallRequest, a *Attempt) error {
	log := logger.From(ctx).With("tenant_id", req.TenantID, "user_id", req.Actor.UserID, "attempt_id", a.ID)

	if req.RawNumber == "" {
		return dialerr.New(dialerr.KindNoPhoneNumber, "")
	}

	user, settings, err := s.userAndSwitch(ctx, req.TenantID, req.Actor.UserID)
	if err != nil {
		return err
	}
	if user.ChannelType == "" {
		return dialerr.Newf(dialerr.KindNoChannelType, "user %s", user.ID)
	}
	if user.InternalNumber == "" {
		return dialerr.Newf(dialerr.KindNoInternalNumber, "user %s", user.ID)
	}

	displayName, err := s.deps.Parties.DisplayName(ctx, req.TenantID, req.PartyRef)
	if err != nil {
		return dialerr.Wrap(dialerr.KindInternal, "party lookup", err)
	}

	res, err := numbering.Classify(req.RawNumber, settings.PrefixRules())
	if err != nil {
		return err
	}
	a.DialString = res.DialString
	a.Branch = res.Branch
	a.DestinationRegion = destinationRegion(res, settings.PrefixRules())
	log.Debug("number normalized",
		"cleaned", res.Cleaned,
		"branch", res.Branch,
		"dial_string", res.DialString,
		"switch_id", settings.ID,
	)

	if s.deps.Guard != nil {
		release, err := s.deps.Guard.Acquire(ctx, req.TenantID, req.Actor.UserID)
		if err != nil {
			return err
		}
		defer release()
	}

	caller := user.CallerContext()
	callerID := telephony.CallerIDText(caller, displayName)
	if err := s.deps.Originator.Dial(ctx, caller, settings.Endpoint(), res.DialString, callerID); err != nil {
		return err
	}
	log.Info("click-to-dial originated", "channel", caller.Channel(), "dial_string", res.DialString)
	return nil
}

// Preview normalizes raw with the prefix rules of the user's switch without
// dialing.
func (s *Service) Preview(ctx context.Context, tenantID, userID, raw string) (Preview, error) {
	_, settings, err := s.userAndSwitch(ctx, tenantID, userID)
	if err != nil {
		return Preview{}, err
	}
	res, err := numbering.Classify(raw, settings.PrefixRules())
	if err != nil {
		return Preview{}, err
	}
	return Preview{
		RawNumber:         raw,
		DialString:        res.DialString,
		Branch:            res.Branch,
		DestinationRegion: destinationRegion(res, settings.PrefixRules()),
		SwitchID:          settings.ID,
	}, nil
}

// userAndSwitch loads the user and the switch they dial through: their own
// switch server when set, else the tenant default.
func (s *Service) userAndSwitch(ctx context.Context, tenantID, userID string) (directory.User, switchcfg.Settings, error) {
	user, err := s.deps.Users.User(ctx, tenantID, userID)
	if errors.Is(err, directory.ErrNotFound) {
		return directory.User{}, switchcfg.Settings{}, dialerr.Newf(dialerr.KindNoConfiguration, "unknown user %s", userID)
	}
	if err != nil {
		return directory.User{}, switchcfg.Settings{}, dialerr.Wrap(dialerr.KindInternal, "user lookup", err)
	}

	var settings switchcfg.Settings
	if user.SwitchServerID != "" {
		settings, err = s.deps.Switches.Get(ctx, tenantID, user.SwitchServerID)
	} else {
		settings, err = s.deps.Switches.Resolve(ctx, tenantID)
	}
	if errors.Is(err, switchcfg.ErrNotFound) {
		return directory.User{}, switchcfg.Settings{}, dialerr.Newf(dialerr.KindNoConfiguration, "no switch for tenant %s", tenantID)
	}
	if err != nil {
		return directory.User{}, switchcfg.Settings{}, dialerr.Wrap(dialerr.KindInternal, "switch lookup", err)
	}
	return user, settings, nil
}

func (s *Service) record(ctx context.Context, req PlaceCallRequest, a Attempt) {
	log := logger.From(ctx)
	if err := s.deps.Attempts.Record(ctx, a); err != nil {
		log.Error("record dial attempt failed", "attempt_id", a.ID, "err", err)
	}
	if s.deps.Auditor == nil || a.TenantID == "" {
		return
	}
	msg := string(a.Status)
	if a.ErrorKind != "" {
		msg += ": " + string(a.ErrorKind)
	}
	if err := s.deps.Auditor.LogDial(ctx, a.TenantID, req.Actor, a.ID, msg); err != nil {
		log.Warn("audit dial failed", "attempt_id", a.ID, "err", err)
	}
}

// destinationRegion places a national-format number by rewriting it to
// international form with the tenant's own country prefix.
func destinationRegion(res numbering.Result, rules numbering.PrefixRules) string {
	if res.Branch != numbering.BranchNational {
		return numbering.DestinationRegion(res.Cleaned)
	}
	national := strings.TrimPrefix(res.Cleaned, rules.NationalPrefix)
	return numbering.DestinationRegion("+" + rules.CountryPrefix + national)
}
