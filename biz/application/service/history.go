package service

import (
	"context"
	"time"

	"github.com/google/wire"
	"github.com/jinzhu/copier"

	"github.com/xh-polaris/croply-core/biz/adaptor/cmd"
	"github.com/xh-polaris/croply-core/biz/application/dto"
	"github.com/xh-polaris/croply-core/biz/domain/history"
	"github.com/xh-polaris/croply-core/biz/domain/severity"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
	"github.com/xh-polaris/croply-core/biz/infrastructure/mapper/diagnosis"
)

type IHistoryService interface {
	List(ctx context.Context, req *cmd.ListHistoryReq) (*dto.ListHistoryResp, error)
	Delete(ctx context.Context, req *cmd.DeleteHistoryReq) (*dto.Response, error)
	Rate(ctx context.Context, req *cmd.RateHistoryReq) (*dto.Response, error)
	Clear(ctx context.Context) (*dto.Response, error)
	ListArchive(ctx context.Context, req *cmd.ListArchiveReq) (*dto.ListArchiveResp, error)
}

// HistoryService 操作本地有界历史与Mongo归档
type HistoryService struct {
	Store         *history.Store
	ArchiveMapper *diagnosis.MongoMapper
}

var HistoryServiceSet = wire.NewSet(
	wire.Struct(new(HistoryService), "*"),
	wire.Bind(new(IHistoryService), new(*HistoryService)),
)

func (s *HistoryService) List(ctx context.Context, req *cmd.ListHistoryReq) (*dto.ListHistoryResp, error) {
	var records []*history.Record
	if req.Search == "" {
		records = s.Store.All()
	} else {
		records = s.Store.Search(req.Search)
	}

	items := make([]*dto.DiagnosisItem, 0, len(records))
	for _, r := range records {
		items = append(items, toItem(r))
	}
	return &dto.ListHistoryResp{Code: 0, Msg: "success", History: items}, nil
}

// Delete 删除一条记录, 不存在时同样返回成功
func (s *HistoryService) Delete(ctx context.Context, req *cmd.DeleteHistoryReq) (*dto.Response, error) {
	s.Store.Remove(req.Id)
	return &dto.Response{Code: 0, Msg: "Entry removed"}, nil
}

// Rate 更新记录评价, 不存在时同样返回成功
// 只接受up/down, 空串表示撤销评价, 其余值忽略
func (s *HistoryService) Rate(ctx context.Context, req *cmd.RateHistoryReq) (*dto.Response, error) {
	switch req.Rating {
	case consts.RatingUp, consts.RatingDown, "":
		s.Store.SetRating(req.Id, req.Rating)
	}
	return &dto.Response{Code: 0, Msg: "success"}, nil
}

// Clear 整体清空本地历史
func (s *HistoryService) Clear(ctx context.Context) (*dto.Response, error) {
	s.Store.Clear()
	return &dto.Response{Code: 0, Msg: "History cleared"}, nil
}

// ListArchive 分页查询Mongo归档
func (s *HistoryService) ListArchive(ctx context.Context, req *cmd.ListArchiveReq) (*dto.ListArchiveResp, error) {
	data, total, err := s.ArchiveMapper.FindMany(ctx, &req.Paging)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DiagnosisItem, 0, len(data))
	for _, d := range data {
		item := &dto.DiagnosisItem{}
		if err := copier.Copy(item, d); err != nil {
			return nil, err
		}
		item.ID = d.RecordID
		item.Severity = severity.Classify(d.Confidence).Meta().Label
		item.Timestamp = d.Timestamp.UTC().Format(time.RFC3339)
		items = append(items, item)
	}
	return &dto.ListArchiveResp{Code: 0, Msg: "success", History: items, Total: total}, nil
}
