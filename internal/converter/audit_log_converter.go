package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// AuditLogToResponse unpacks the entity, entity_id, old_value and new_value
// keys written by the audit service
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	res := &dto.AuditLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		User:      UserToResponse(log.User),
		Action:    log.Action,
		CreatedAt: log.CreatedAt,
	}
	if log.Metadata == nil {
		return res
	}

	res.Entity, _ = log.Metadata["entity"].(string)
	res.EntityID, _ = log.Metadata["entity_id"].(string)
	res.OldValue = log.Metadata["old_value"]
	res.NewValue = log.Metadata["new_value"]
	return res
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, *AuditLogToResponse(&logs[i]))
	}
	return responses
}
