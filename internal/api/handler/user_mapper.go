package handler

import (
	"github.com/fittracker/user-service/internal/core/domain"
	"github.com/fittracker/user-service/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthdate: req.Birthdate,
		Email:     req.Email,
	}
}

func toUpdateInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthdate: req.Birthdate,
		Email:     req.Email,
	}
}

// --- Entity → views ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Birthdate: u.Birthdate,
		Email:     u.Email,
	}
}

func toSimpleUserResponse(u *domain.User) simpleUserResponse {
	return simpleUserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toEmailUserResponse(u *domain.User) emailUserResponse {
	return emailUserResponse{
		ID:    u.ID,
		Email: u.Email,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toSimpleUserResponses(users []*domain.User) []simpleUserResponse {
	out := make([]simpleUserResponse, len(users))
	for i, u := range users {
		out[i] = toSimpleUserResponse(u)
	}
	return out
}

func toEmailUserResponses(users []*domain.User) []emailUserResponse {
	out := make([]emailUserResponse, len(users))
	for i, u := range users {
		out[i] = toEmailUserResponse(u)
	}
	return out
}
