package service

import (
	"context"
	"errors"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"gorm.io/gorm"
)

// EdgeService 画布连线的手动操作
// 手动拖拽连线不做成对去重，同一对笔记允许多条手动连线并存
type EdgeService interface {
	// Create 创建手动连线，关系类型归一化，缺省为 related-to
	Create(ctx context.Context, params *dto.EdgeCreateRequest) (*dto.EdgeDTO, error)

	// Update 修改连线的关系类型或标签
	Update(ctx context.Context, params *dto.EdgeUpdateRequest) (*dto.EdgeDTO, error)

	// Delete 删除连线
	Delete(ctx context.Context, params *dto.EdgeDeleteRequest) error

	// ListRelationshipTypes 返回全部关系类型及其展示元数据
	ListRelationshipTypes() []*dto.RelationshipTypeDTO
}

type edgeService struct {
	noteRepo domain.NoteRepository
	edgeRepo domain.EdgeRepository
	events   EventPublisher
}

// NewEdgeService 创建 EdgeService 实例
func NewEdgeService(noteRepo domain.NoteRepository, edgeRepo domain.EdgeRepository, events EventPublisher) EdgeService {
	if events == nil {
		events = NopPublisher()
	}
	return &edgeService{
		noteRepo: noteRepo,
		edgeRepo: edgeRepo,
		events:   events,
	}
}

// Create 创建手动连线
func (s *edgeService) Create(ctx context.Context, params *dto.EdgeCreateRequest) (*dto.EdgeDTO, error) {
	if params.SourceNoteID == params.TargetNoteID {
		return nil, code.ErrorInvalidParams.WithDetails("source and target must differ")
	}
	for _, id := range []int64{params.SourceNoteID, params.TargetNoteID} {
		if _, err := s.noteRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, code.ErrorNoteNotFound
			}
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
	}

	relType := domain.NormalizeRelationshipType(params.RelationshipType, domain.DefaultRelationshipType)
	label := params.Label
	if label == "" {
		label = relType.Meta().Label
	}

	edge, err := s.edgeRepo.Create(ctx, &domain.Edge{
		SourceNoteID:     params.SourceNoteID,
		TargetNoteID:     params.TargetNoteID,
		RelationshipType: relType,
		Label:            label,
		IsManual:         true,
	})
	if err != nil {
		return nil, code.ErrorEdgeCreateFailed.WithDetails(err.Error())
	}

	s.events.Publish(dto.WSActionEdgeCreated, &dto.WSEdgeEventData{
		EdgeID:           edge.ID,
		SourceNoteID:     edge.SourceNoteID,
		TargetNoteID:     edge.TargetNoteID,
		RelationshipType: string(edge.RelationshipType),
	})
	return dto.EdgeFromDomain(edge), nil
}

// Update 修改连线的关系类型或标签
func (s *edgeService) Update(ctx context.Context, params *dto.EdgeUpdateRequest) (*dto.EdgeDTO, error) {
	edge, err := s.edgeRepo.GetByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorEdgeNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	edge.RelationshipType = domain.NormalizeRelationshipType(params.RelationshipType, edge.RelationshipType)
	if params.Label != "" {
		edge.Label = params.Label
	}
	if err := s.edgeRepo.Update(ctx, edge); err != nil {
		return nil, code.ErrorEdgeModifyFailed.WithDetails(err.Error())
	}

	s.events.Publish(dto.WSActionEdgeUpdated, &dto.WSEdgeEventData{
		EdgeID:           edge.ID,
		SourceNoteID:     edge.SourceNoteID,
		TargetNoteID:     edge.TargetNoteID,
		RelationshipType: string(edge.RelationshipType),
	})
	return dto.EdgeFromDomain(edge), nil
}

// Delete 删除连线
func (s *edgeService) Delete(ctx context.Context, params *dto.EdgeDeleteRequest) error {
	edge, err := s.edgeRepo.GetByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorEdgeNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.edgeRepo.Delete(ctx, edge.ID); err != nil {
		return code.ErrorEdgeDeleteFailed.WithDetails(err.Error())
	}

	s.events.Publish(dto.WSActionEdgeDeleted, &dto.WSEdgeEventData{
		EdgeID:           edge.ID,
		SourceNoteID:     edge.SourceNoteID,
		TargetNoteID:     edge.TargetNoteID,
		RelationshipType: string(edge.RelationshipType),
	})
	return nil
}

// ListRelationshipTypes 返回全部关系类型
func (s *edgeService) ListRelationshipTypes() []*dto.RelationshipTypeDTO {
	types := domain.AllRelationshipTypes()
	out := make([]*dto.RelationshipTypeDTO, 0, len(types))
	for _, t := range types {
		meta := t
		out = append(out, &dto.RelationshipTypeDTO{
			Type:        string(meta.Type),
			Label:       meta.Label,
			Color:       meta.Color,
			Description: meta.Description,
		})
	}
	return out
}

var _ EdgeService = (*edgeService)(nil)
