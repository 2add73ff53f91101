package httpapi

import (
	"time"

	"github.com/riskibarqy/gotlocks/internal/domain/grading"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/scoring"
	"github.com/riskibarqy/gotlocks/internal/usecase"
)

type legRequest struct {
	Description string `json:"description" validate:"omitempty,max=200"`
	Odds        string `json:"odds" validate:"required,max=16"`
}

type submitPickRequest struct {
	Description     string       `json:"description" validate:"required,max=200"`
	Odds            string       `json:"odds" validate:"omitempty,max=32"`
	DifficultyLabel string       `json:"difficulty_label" validate:"omitempty,max=64"`
	Legs            []legRequest `json:"legs" validate:"omitempty,max=12,dive"`
}

type gradePickRequest struct {
	Result      string `json:"result" validate:"required,oneof=win loss void not_found pending"`
	BonusPoints *int   `json:"bonus_points" validate:"omitempty,min=-100,max=100"`
}

type previewPickRequest struct {
	Description     string       `json:"description" validate:"omitempty,max=200"`
	Odds            string       `json:"odds" validate:"omitempty,max=32"`
	Result          string       `json:"result" validate:"omitempty,max=16"`
	DifficultyLabel string       `json:"difficulty_label" validate:"omitempty,max=64"`
	BonusPoints     int          `json:"bonus_points"`
	Points          *int         `json:"points"`
	Legs            []legRequest `json:"legs" validate:"omitempty,max=12,dive"`
}

type previewRequest struct {
	Mode  string               `json:"mode" validate:"omitempty,max=32"`
	Picks []previewPickRequest `json:"picks" validate:"required,min=1,dive"`
}

type tierDTO struct {
	Tier    int    `json:"tier"`
	Name    string `json:"name"`
	Short   string `json:"short"`
	Bracket string `json:"bracket"`
	Color   string `json:"color"`
	Points  int    `json:"points"`
	Mode    string `json:"mode"`
	Source  string `json:"source,omitempty"`
}

type tierTableDTO struct {
	Mode         string    `json:"mode"`
	PotentialCap int       `json:"potential_cap"`
	Tiers        []tierDTO `json:"tiers"`
}

type legDTO struct {
	Description string `json:"description,omitempty"`
	Odds        string `json:"odds"`
}

type pickScoreDTO struct {
	ID              string   `json:"id,omitempty"`
	SlipID          string   `json:"slip_id,omitempty"`
	UserID          string   `json:"user_id,omitempty"`
	Description     string   `json:"description"`
	Odds            string   `json:"odds,omitempty"`
	Result          string   `json:"result"`
	IsCombo         bool     `json:"is_combo"`
	Legs            []legDTO `json:"legs,omitempty"`
	BonusPoints     int      `json:"bonus_points"`
	DifficultyLabel string   `json:"difficulty_label,omitempty"`
	Tier            *tierDTO `json:"tier"`
	TierLabel       string   `json:"tier_label"`
	Points          int      `json:"points"`
	PotentialPoints *int     `json:"potential_points"`
	GradedAt        string   `json:"graded_at,omitempty"`
}

type recordDTO struct {
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Voids   int `json:"voids"`
	Pending int `json:"pending"`
}

type previewDTO struct {
	Mode           string         `json:"mode"`
	Picks          []pickScoreDTO `json:"picks"`
	TotalPoints    int            `json:"total_points"`
	TotalPotential int            `json:"total_potential"`
	Record         recordDTO      `json:"record"`
}

type slipDTO struct {
	ID              string `json:"id"`
	GroupID         string `json:"group_id"`
	Name            string `json:"name"`
	PickDeadline    string `json:"pick_deadline,omitempty"`
	ResultsDeadline string `json:"results_deadline,omitempty"`
	IsVibe          bool   `json:"is_vibe"`
	MaxPicksPerUser int    `json:"max_picks_per_user"`
}

type slipSummaryDTO struct {
	Slip            slipDTO        `json:"slip"`
	Status          string         `json:"status"`
	Mode            string         `json:"mode"`
	Picks           []pickScoreDTO `json:"picks"`
	EarnedPoints    int            `json:"earned_points"`
	PotentialPoints int            `json:"potential_points"`
	Record          recordDTO      `json:"record"`
}

type leaderboardEntryDTO struct {
	Rank       int       `json:"rank"`
	UserID     string    `json:"user_id"`
	Points     int       `json:"points"`
	PicksCount int       `json:"picks_count"`
	Record     recordDTO `json:"record"`
}

type leaderboardDTO struct {
	Scope     string                `json:"scope"`
	ScopeID   string                `json:"scope_id,omitempty"`
	Mode      string                `json:"mode"`
	SlipCount int                   `json:"slip_count"`
	Entries   []leaderboardEntryDTO `json:"entries"`
}

// gradingRelayDTO is written without the response envelope.
type gradingRelayDTO struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   any    `json:"upstream_body"`
	DurationMS     int64  `json:"duration_ms"`
}

type gradingRunDTO struct {
	ID             string `json:"id"`
	Trigger        string `json:"trigger"`
	Success        bool   `json:"success"`
	Outcome        string `json:"outcome"`
	Message        string `json:"message"`
	UpstreamStatus int    `json:"upstream_status"`
	DurationMS     int64  `json:"duration_ms"`
	StartedAt      string `json:"started_at"`
	TraceID        string `json:"trace_id,omitempty"`
}

func legsFromRequest(items []legRequest) []pick.Leg {
	if len(items) == 0 {
		return nil
	}
	out := make([]pick.Leg, 0, len(items))
	for _, item := range items {
		out = append(out, pick.Leg{Description: item.Description, Odds: item.Odds})
	}
	return out
}

func tierMetaToDTO(v scoring.TierMeta) tierDTO {
	return tierDTO{
		Tier:    v.Tier,
		Name:    v.Name,
		Short:   v.Short,
		Bracket: v.Bracket,
		Color:   v.Color,
		Points:  v.Points,
		Mode:    string(v.Mode),
		Source:  string(v.Source),
	}
}

func tierTableToDTO(v usecase.TierTable) tierTableDTO {
	tiers := make([]tierDTO, 0, len(v.Tiers))
	for _, item := range v.Tiers {
		tiers = append(tiers, tierMetaToDTO(item))
	}
	return tierTableDTO{
		Mode:         string(v.Mode),
		PotentialCap: v.PotentialCap,
		Tiers:        tiers,
	}
}

func pickScoreToDTO(v usecase.PickScore) pickScoreDTO {
	out := pickScoreDTO{
		ID:              v.Pick.ID,
		SlipID:          v.Pick.SlipID,
		UserID:          v.Pick.UserID,
		Description:     v.Pick.Description,
		Odds:            v.Pick.Odds,
		Result:          v.Pick.Result.String(),
		IsCombo:         v.Pick.IsCombo,
		BonusPoints:     v.Pick.BonusPoints,
		DifficultyLabel: v.Pick.DifficultyLabel,
		TierLabel:       v.TierLabel,
		Points:          v.Points,
		PotentialPoints: v.PotentialPoints,
		GradedAt:        formatOptionalTime(v.Pick.GradedAt),
	}
	if v.Tier != nil {
		tier := tierMetaToDTO(*v.Tier)
		out.Tier = &tier
	}
	for _, leg := range v.Pick.Legs {
		out.Legs = append(out.Legs, legDTO{Description: leg.Description, Odds: leg.Odds})
	}
	return out
}

func pickScoresToDTO(items []usecase.PickScore) []pickScoreDTO {
	out := make([]pickScoreDTO, 0, len(items))
	for _, item := range items {
		out = append(out, pickScoreToDTO(item))
	}
	return out
}

func recordToDTO(v usecase.PickRecord) recordDTO {
	return recordDTO{Wins: v.Wins, Losses: v.Losses, Voids: v.Voids, Pending: v.Pending}
}

func previewToDTO(v usecase.PreviewResult) previewDTO {
	return previewDTO{
		Mode:           string(v.Mode),
		Picks:          pickScoresToDTO(v.Rows),
		TotalPoints:    v.TotalPoints,
		TotalPotential: v.TotalPotential,
		Record:         recordToDTO(v.Record),
	}
}

func slipSummaryToDTO(v usecase.SlipSummary) slipSummaryDTO {
	return slipSummaryDTO{
		Slip: slipDTO{
			ID:              v.Slip.ID,
			GroupID:         v.Slip.GroupID,
			Name:            v.Slip.Name,
			PickDeadline:    formatTime(v.Slip.PickDeadline),
			ResultsDeadline: formatTime(v.Slip.ResultsDeadline),
			IsVibe:          v.Slip.IsVibe,
			MaxPicksPerUser: v.Slip.MaxPicksPerUser,
		},
		Status:          string(v.Status),
		Mode:            string(v.Mode),
		Picks:           pickScoresToDTO(v.Picks),
		EarnedPoints:    v.EarnedPoints,
		PotentialPoints: v.PotentialPoints,
		Record:          recordToDTO(v.Record),
	}
}

func leaderboardToDTO(v usecase.Leaderboard) leaderboardDTO {
	entries := make([]leaderboardEntryDTO, 0, len(v.Entries))
	for _, item := range v.Entries {
		entries = append(entries, leaderboardEntryDTO{
			Rank:       item.Rank,
			UserID:     item.UserID,
			Points:     item.Points,
			PicksCount: item.PicksCount,
			Record:     recordToDTO(item.Record),
		})
	}
	return leaderboardDTO{
		Scope:     string(v.Scope),
		ScopeID:   v.ScopeID,
		Mode:      string(v.Mode),
		SlipCount: v.SlipCount,
		Entries:   entries,
	}
}

func gradingRelayToDTO(v grading.Run) gradingRelayDTO {
	return gradingRelayDTO{
		Success:        v.Success,
		Message:        v.Message,
		UpstreamStatus: v.StatusCode,
		UpstreamBody:   v.UpstreamBody,
		DurationMS:     v.Duration.Milliseconds(),
	}
}

func gradingRunsToDTO(items []grading.Run) []gradingRunDTO {
	out := make([]gradingRunDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gradingRunDTO{
			ID:             item.ID,
			Trigger:        item.Trigger,
			Success:        item.Success,
			Outcome:        string(item.Outcome),
			Message:        item.Message,
			UpstreamStatus: item.StatusCode,
			DurationMS:     item.Duration.Milliseconds(),
			StartedAt:      formatTime(item.StartedAt),
			TraceID:        item.TraceID,
		})
	}
	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}
