package service

import (
	"context"
	"strings"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/management"
	"github.com/Marga-Ghale/ora-identity-services/internal/models"
)

// ============================================
// Relation (ReBAC) Service
// ============================================

type RelationService interface {
	Create(ctx context.Context, tuples []models.RelationTuple) error
	Delete(ctx context.Context, tuples []models.RelationTuple) error
	WhoCanAccess(ctx context.Context, resource, relationDefinition, namespace string) ([]string, error)
	ResourceRelations(ctx context.Context, resource string) ([]models.RelationTuple, error)
	TargetAccess(ctx context.Context, target string) ([]models.RelationTuple, error)
}

type relationService struct {
	client management.Client
}

func NewRelationService(client management.Client) RelationService {
	return &relationService{client: client}
}

func (s *relationService) Create(ctx context.Context, tuples []models.RelationTuple) error {
	if err := validateTuples(tuples); err != nil {
		return err
	}
	logger.L().Infof("Creating %d relation tuple(s)", len(tuples))

	if err := s.client.CreateRelations(ctx, toRelations(tuples)); err != nil {
		return remote("create relations", err)
	}

	logger.L().Infof("Successfully created %d relation tuple(s)", len(tuples))
	return nil
}

func (s *relationService) Delete(ctx context.Context, tuples []models.RelationTuple) error {
	if err := validateTuples(tuples); err != nil {
		return err
	}
	logger.L().Infof("Deleting %d relation tuple(s)", len(tuples))

	if err := s.client.DeleteRelations(ctx, toRelations(tuples)); err != nil {
		return remote("delete relations", err)
	}

	logger.L().Infof("Successfully deleted %d relation tuple(s)", len(tuples))
	return nil
}

func (s *relationService) WhoCanAccess(ctx context.Context, resource, relationDefinition, namespace string) ([]string, error) {
	if isBlank(resource) || isBlank(relationDefinition) || isBlank(namespace) {
		return nil, invalidf("resource, relationDefinition, and namespace are required")
	}
	logger.L().Infof("Querying who can access resource: %s with relation: %s in namespace: %s", resource, relationDefinition, namespace)

	targets, err := s.client.WhoCanAccess(ctx, resource, relationDefinition, namespace)
	if err != nil {
		return nil, remote("who can access", err)
	}
	if targets == nil {
		targets = []string{}
	}

	logger.L().Infof("Found %d target(s) that can access the resource", len(targets))
	return targets, nil
}

func (s *relationService) ResourceRelations(ctx context.Context, resource string) ([]models.RelationTuple, error) {
	logger.L().Infof("Getting relations for resource: %s", resource)

	relations, err := s.client.ResourceRelations(ctx, resource)
	if err != nil {
		return nil, remote("resource relations", err)
	}

	tuples := toTuples(relations)
	logger.L().Infof("Found %d relation(s) for resource", len(tuples))
	return tuples, nil
}

func (s *relationService) TargetAccess(ctx context.Context, target string) ([]models.RelationTuple, error) {
	logger.L().Infof("Getting access for target: %s", target)

	relations, err := s.client.WhatCanTargetAccess(ctx, target)
	if err != nil {
		return nil, remote("target access", err)
	}

	tuples := toTuples(relations)
	logger.L().Infof("Found %d relation(s) for target", len(tuples))
	return tuples, nil
}

func validateTuples(tuples []models.RelationTuple) error {
	if len(tuples) == 0 {
		return invalidf("Relations list cannot be empty")
	}
	for i, t := range tuples {
		var missing []string
		if isBlank(t.Resource) {
			missing = append(missing, "resource")
		}
		if isBlank(t.RelationDefinition) {
			missing = append(missing, "relationDefinition")
		}
		if isBlank(t.Namespace) {
			missing = append(missing, "namespace")
		}
		if isBlank(t.Target) {
			missing = append(missing, "target")
		}
		if len(missing) > 0 {
			return invalidf("relations[%d]: %s must not be blank", i, strings.Join(missing, ", "))
		}
	}
	return nil
}

func toRelations(tuples []models.RelationTuple) []*management.Relation {
	relations := make([]*management.Relation, len(tuples))
	for i, t := range tuples {
		relations[i] = &management.Relation{
			Resource:           t.Resource,
			RelationDefinition: t.RelationDefinition,
			Namespace:          t.Namespace,
			Target:             t.Target,
		}
	}
	return relations
}

func toTuples(relations []*management.Relation) []models.RelationTuple {
	tuples := make([]models.RelationTuple, 0, len(relations))
	for _, r := range relations {
		if r == nil {
			continue
		}
		tuples = append(tuples, models.RelationTuple{
			Resource:           r.Resource,
			RelationDefinition: r.RelationDefinition,
			Namespace:          r.Namespace,
			Target:             r.Target,
		})
	}
	return tuples
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
