package graphql

import (
	"context"

	apperrors "mergington.GO/core/errors"
	"mergington.GO/model/entity"
	activityService "mergington.GO/service/activity"
)

// Resolver implements both Query and Mutation fields.
type Resolver struct {
	svc *activityService.Service
}

func NewResolver(svc *activityService.Service) *Resolver {
	return &Resolver{svc: svc}
}

func (r *Resolver) Activities(ctx context.Context) []*ActivityResolver {
	acts := r.svc.List(ctx).Ordered()
	out := make([]*ActivityResolver, 0, len(acts))
	for _, a := range acts {
		out = append(out, &ActivityResolver{a: a})
	}
	return out
}

// Activity resolves to null for unknown names.
func (r *Resolver) Activity(ctx context.Context, args struct{ Name string }) (*ActivityResolver, error) {
	a, err := r.svc.Get(ctx, args.Name)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(err)
	}
	return &ActivityResolver{a: a}, nil
}

// RosterArgs are the arguments of signup and remove.
type RosterArgs struct {
	Activity string
	Email    string
}

func (r *Resolver) Signup(ctx context.Context, args RosterArgs) (*ResultResolver, error) {
	msg, err := r.svc.Signup(ctx, args.Activity, args.Email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &ResultResolver{message: msg}, nil
}

func (r *Resolver) Remove(ctx context.Context, args RosterArgs) (*ResultResolver, error) {
	msg, err := r.svc.Remove(ctx, args.Activity, args.Email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &ResultResolver{message: msg}, nil
}

type ActivityResolver struct {
	a entity.Activity
}

func (r *ActivityResolver) Name() string        { return r.a.Name }
func (r *ActivityResolver) Description() string { return r.a.Description }
func (r *ActivityResolver) Schedule() string    { return r.a.Schedule }

func (r *ActivityResolver) MaxParticipants() int32 {
	return int32(r.a.MaxParticipants)
}

func (r *ActivityResolver) Participants() []string {
	if r.a.Participants == nil {
		return []string{}
	}
	return r.a.Participants
}

type ResultResolver struct {
	message string
}

func (r *ResultResolver) Message() string { return r.message }

// resolverError reports the human message and carries the code in extensions.
type resolverError struct {
	std *apperrors.StandardError
}

func (e *resolverError) Error() string { return e.std.Message }

func (e *resolverError) Extensions() map[string]interface{} { return e.std.Extensions() }

func wrapError(err error) error {
	if std, ok := apperrors.AsStandard(err); ok {
		return &resolverError{std: std}
	}
	return err
}
