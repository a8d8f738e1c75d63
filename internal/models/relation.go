package models

// ============================================
// ReBAC DTOs
// ============================================

// RelationTuple states that Target has RelationDefinition on Resource within Namespace.
type RelationTuple struct {
	Resource           string `json:"resource" binding:"notblank"`
	RelationDefinition string `json:"relationDefinition" binding:"notblank"`
	Namespace          string `json:"namespace" binding:"notblank"`
	Target             string `json:"target" binding:"notblank"`
}

type RelationRequest struct {
	Relations []RelationTuple `json:"relations" binding:"dive"`
}

type RelationsResponse struct {
	Relations []RelationTuple `json:"relations"`
}

type TargetsResponse struct {
	Targets []string `json:"targets"`
}

type WhoCanAccessQuery struct {
	Resource           string `form:"resource"`
	RelationDefinition string `form:"relationDefinition"`
	Namespace          string `form:"namespace"`
}
