package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"kpm/internal/domain/entry"
	"kpm/internal/domain/template"
	"kpm/internal/identity"
)

// memberListLimit bounds the role-scoped member fetch used for court-based
// resolution.
const memberListLimit = 500

// fallbackRef is attached to entries whose member carries no references.
var fallbackRef = entry.KpiRef{Label: "area", Value: "raipur"}

type EntryCreator interface {
	Create(ctx context.Context, params entry.CreateParams) (entry.Entry, error)
}

type TemplateAPI interface {
	GetByID(ctx context.Context, id string) (template.Template, error)
}

type Service struct {
	Entries   EntryCreator
	Templates TemplateAPI
	Identity  identity.API
}

func NewService(entries EntryCreator, templates TemplateAPI, ident identity.API) *Service {
	return &Service{Entries: entries, Templates: templates, Identity: ident}
}

// Migrate bulk-imports one historical CSV. Records are processed sequentially
// and fault-isolated: a failing record is counted and reported without
// aborting the batch. Re-running the same import skips every record through
// duplicate detection.
func (s *Service) Migrate(ctx context.Context, params Params) (Result, error) {
	result := Result{
		RunID:   uuid.NewString(),
		Errors:  []string{},
		Details: make(map[string]Detail),
	}

	cfg, err := ConfigFor(params.DepartmentSlug, params.Role)
	if err != nil {
		return result, err
	}

	if _, err := s.Templates.GetByID(ctx, params.TemplateID); err != nil {
		return result, err
	}

	records, mappings, err := ParseCSV(params.CSVText, cfg, params.Role)
	if err != nil {
		return result, err
	}
	result.HeaderMappings = mappings
	result.TotalRecords = len(records)

	// Lazily fetched once per run; court-based resolution needs the full
	// role-scoped member list.
	var roleMembers []identity.Member

	for _, record := range records {
		key := detailKey(record)

		member, matchedRef, skipReason, err := s.resolveMember(ctx, record, params, &roleMembers)
		if err != nil {
			result.FailedEntries++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			result.Details[key] = Detail{Success: false, Message: err.Error()}
			continue
		}
		if skipReason != "" {
			result.SkippedEntries++
			result.Details[key] = Detail{Success: false, Message: skipReason}
			continue
		}

		values := make([]template.RawValue, 0, len(record.Values))
		for name, value := range record.Values {
			values = append(values, template.RawValue{Name: name, Value: value})
		}

		created, err := s.Entries.Create(ctx, entry.CreateParams{
			Month:      params.Month,
			Year:       params.Year,
			TemplateID: params.TemplateID,
			KpiRef:     entryRef(member, matchedRef),
			CreatedFor: member.UserID,
			CreatedBy:  params.CreatedBy,
			Status:     entry.StatusGenerated,
			Values:     values,
		})
		if errors.Is(err, entry.ErrEntryExists) {
			result.SkippedEntries++
			result.Details[key] = Detail{Success: false, Message: "entry already exists for this period"}
			continue
		}
		if err != nil {
			result.FailedEntries++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			result.Details[key] = Detail{Success: false, Message: err.Error()}
			continue
		}

		result.SuccessfulEntries++
		result.Details[key] = Detail{Success: true, Message: "entry created", EntryID: created.ID}
	}

	return result, nil
}

// resolveMember maps a CSV record to an identity-service member. Court-bearing
// records are resolved against the role-scoped member list so that same-named
// officers can be told apart by their court reference; a name with no court
// match falls back to the first same-named member. A missing member is a skip,
// not a failure.
func (s *Service) resolveMember(ctx context.Context, record Record, params Params, roleMembers *[]identity.Member) (identity.Member, *identity.Ref, string, error) {
	if record.CourtName == "" {
		member, err := s.Identity.MemberByName(ctx, record.OfficerName)
		if errors.Is(err, identity.ErrMemberNotFound) {
			return identity.Member{}, nil, "member not found: " + record.OfficerName, nil
		}
		if err != nil {
			return identity.Member{}, nil, "", err
		}
		return member, nil, "", nil
	}

	if *roleMembers == nil {
		members, err := s.Identity.MembersByRole(ctx, params.Role, params.DepartmentSlug, memberListLimit)
		if err != nil {
			return identity.Member{}, nil, "", err
		}
		*roleMembers = members
	}

	var sameName []identity.Member
	for _, member := range *roleMembers {
		if member.Name == record.OfficerName {
			sameName = append(sameName, member)
		}
	}
	if len(sameName) == 0 {
		return identity.Member{}, nil, "member not found: " + record.OfficerName, nil
	}

	for _, member := range sameName {
		if ref, ok := member.Ref("court", record.CourtName); ok {
			return member, &ref, "", nil
		}
	}

	slog.Warn("no court match among same-named members, using first",
		"officer", record.OfficerName, "court", record.CourtName, "candidates", len(sameName))
	return sameName[0], nil, "", nil
}

func entryRef(member identity.Member, matched *identity.Ref) entry.KpiRef {
	if matched != nil {
		return entry.KpiRef{Label: matched.Label, Value: matched.Value}
	}
	if len(member.Refs) > 0 {
		return entry.KpiRef{Label: member.Refs[0].Label, Value: member.Refs[0].Value}
	}
	return fallbackRef
}

func detailKey(record Record) string {
	if record.CourtName != "" {
		return record.OfficerName + " - " + record.CourtName
	}
	return record.OfficerName
}
