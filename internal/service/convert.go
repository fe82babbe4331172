package service

import (
	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/model"
	"github.com/Pooyash1998/studyplanner/internal/planner"
)

// ── model → dto ──

func toModuleResponse(m model.Module) dto.ModuleResponse {
	offering := make([]string, len(m.Offering))
	for i, t := range m.Offering {
		offering[i] = string(t)
	}
	var sid *int
	if m.SemesterID != nil {
		id := *m.SemesterID
		sid = &id
	}
	return dto.ModuleResponse{
		ID:         m.ID,
		Name:       m.Name,
		Offering:   offering,
		Hardness:   m.Hardness,
		Credits:    m.Credits,
		Frozen:     m.Frozen,
		SemesterID: sid,
	}
}

func toModuleResponses(modules []model.Module) []dto.ModuleResponse {
	out := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, toModuleResponse(m))
	}
	return out
}

func toSemesterResponses(b *planner.Board) []dto.SemesterResponse {
	out := make([]dto.SemesterResponse, 0, len(b.Semesters))
	for _, s := range b.Semesters {
		out = append(out, dto.SemesterResponse{
			ID:            s.ID,
			Name:          s.Name,
			Type:          string(s.Type),
			HardnessLimit: s.HardnessLimit,
			HardnessSum:   b.HardnessSum(s),
			Credits:       b.CreditSum(s),
			Modules:       toModuleResponses(b.SemesterModules(s)),
		})
	}
	return out
}

func toPlanResponse(p model.Plan) dto.PlanResponse {
	semesters := make([]dto.PlanSemesterResponse, 0, len(p.Semesters))
	for _, s := range p.Semesters {
		semesters = append(semesters, dto.PlanSemesterResponse{
			ID:            s.ID,
			Name:          s.Name,
			Type:          string(s.Type),
			HardnessLimit: s.HardnessLimit,
			ModuleIDs:     append([]string{}, s.ModuleIDs...),
		})
	}
	return dto.PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Score:       p.Score,
		Source:      p.Source,
		Semesters:   semesters,
	}
}

func toPlansResponse(b *planner.Board) dto.PlansResponse {
	out := dto.PlansResponse{Alternatives: make([]dto.PlanResponse, 0, len(b.Alternatives))}
	if b.CurrentPlan != nil {
		p := toPlanResponse(*b.CurrentPlan)
		out.Current = &p
	}
	for _, p := range b.Alternatives {
		out.Alternatives = append(out.Alternatives, toPlanResponse(p))
	}
	return out
}

func toBoardResponse(b *planner.Board) *dto.BoardResponse {
	return &dto.BoardResponse{
		Modules:    toModuleResponses(b.Modules),
		Unassigned: toModuleResponses(b.Unassigned()),
		Semesters:  toSemesterResponses(b),
		Plans:      toPlansResponse(b),
	}
}

// ── dto → model ──

func toSemesterTypes(in []string) []model.SemesterType {
	if in == nil {
		return nil
	}
	out := make([]model.SemesterType, len(in))
	for i, s := range in {
		out[i] = model.SemesterType(s)
	}
	return out
}
