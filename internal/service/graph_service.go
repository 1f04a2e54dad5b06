package service

import (
	"context"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
)

// GraphService 画布快照读取
type GraphService interface {
	// Snapshot 返回全部存活笔记节点与连线，供画布一次性渲染
	Snapshot(ctx context.Context) (*dto.GraphDTO, error)
}

type graphService struct {
	noteRepo domain.NoteRepository
	edgeRepo domain.EdgeRepository
}

// NewGraphService 创建 GraphService 实例
func NewGraphService(noteRepo domain.NoteRepository, edgeRepo domain.EdgeRepository) GraphService {
	return &graphService{
		noteRepo: noteRepo,
		edgeRepo: edgeRepo,
	}
}

// Snapshot 返回画布快照
func (s *graphService) Snapshot(ctx context.Context) (*dto.GraphDTO, error) {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	edges, err := s.edgeRepo.ListAll(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	live := make(map[int64]struct{}, len(notes))
	graph := &dto.GraphDTO{
		Nodes: make([]*dto.GraphNodeDTO, 0, len(notes)),
		Edges: make([]*dto.EdgeDTO, 0, len(edges)),
	}
	for _, n := range notes {
		live[n.ID] = struct{}{}
		graph.Nodes = append(graph.Nodes, &dto.GraphNodeDTO{
			ID:        n.ID,
			Title:     n.Title,
			Tags:      n.Tags,
			PositionX: n.PositionX,
			PositionY: n.PositionY,
			UpdatedAt: timex.Time(n.UpdatedAt),
		})
	}
	for _, e := range edges {
		// 任一端已删除的连线不进快照
		if _, ok := live[e.SourceNoteID]; !ok {
			continue
		}
		if _, ok := live[e.TargetNoteID]; !ok {
			continue
		}
		graph.Edges = append(graph.Edges, dto.EdgeFromDomain(e))
	}
	return graph, nil
}

var _ GraphService = (*graphService)(nil)
