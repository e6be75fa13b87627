package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"household-ledger-go/internal/domain/errs"
)

// InitiateConnection records a pending request from requesterID to the
// account registered under partnerEmail and returns a confirmation message.
func (s *Service) InitiateConnection(ctx context.Context, requesterID, partnerEmail string) (string, error) {
	requesterID = strings.TrimSpace(requesterID)
	if requesterID == "" {
		return "", errs.Validation("requester id is required")
	}
	email := normalizeEmail(partnerEmail)
	if email == "" {
		return "", errs.Validation("partner email is required")
	}

	var target *Account
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		requester, err := tx.FindByID(ctx, requesterID)
		if err != nil {
			return err
		}
		if requester.Linked() {
			return ErrRequesterLinked
		}

		target, err = tx.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				return ErrPartnerNotFound
			}
			return err
		}
		if target.ID == requester.ID {
			return ErrSelfConnection
		}
		if target.Linked() {
			return ErrTargetLinked
		}
		if !requester.SameLastName(target) {
			return ErrNameMismatch
		}

		existing, err := tx.FindPendingBetween(ctx, requester.ID, target.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateRequest
		}

		return tx.CreateRequest(ctx, &ConnectionRequest{
			ID:         uuid.NewString(),
			SenderID:   requester.ID,
			ReceiverID: target.ID,
			Status:     StatusPending,
		})
	})
	if err != nil {
		return "", err
	}

	s.cache.DeleteByAccountID(target.ID)
	return fmt.Sprintf("Connection request sent to %s %s", target.FirstName, target.LastName), nil
}

// RespondToConnection settles a pending request. Accepting links both
// accounts and closes the request in one transaction.
func (s *Service) RespondToConnection(ctx context.Context, requestID, decision string) (*View, error) {
	return s.respond(ctx, "", requestID, decision)
}

// RespondAsReceiver is RespondToConnection restricted to the account the
// request was sent to; a request addressed elsewhere is reported as missing.
func (s *Service) RespondAsReceiver(ctx context.Context, responderID, requestID, decision string) (*View, error) {
	if strings.TrimSpace(responderID) == "" {
		return nil, errs.Validation("responder id is required")
	}
	return s.respond(ctx, responderID, requestID, decision)
}

func (s *Service) respond(ctx context.Context, responderID, requestID, decision string) (*View, error) {
	choice, err := ParseDecision(decision)
	if err != nil {
		return nil, err
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, errs.Validation("request id is required")
	}

	var request *ConnectionRequest
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		var err error
		request, err = tx.FindRequestByID(ctx, requestID)
		if err != nil {
			return err
		}
		if responderID != "" && request.ReceiverID != responderID {
			return ErrRequestNotFound
		}
		if request.Status != StatusPending {
			return ErrAlreadyProcessed
		}

		if choice == DecisionReject {
			return tx.TransitionRequest(ctx, request.ID, StatusRejected)
		}

		if err := tx.TransitionRequest(ctx, request.ID, StatusAccepted); err != nil {
			return err
		}
		if err := tx.SetPartner(ctx, request.SenderID, request.ReceiverID); err != nil {
			return err
		}
		return tx.SetPartner(ctx, request.ReceiverID, request.SenderID)
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByAccountID(request.ReceiverID)
	if choice == DecisionAccept {
		s.cache.DeleteByAccountID(request.SenderID)
	}

	return s.Profile(ctx, request.ReceiverID)
}
