package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/wire"
	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/croply-core/biz/application/dto"
	"github.com/xh-polaris/croply-core/biz/domain/detail"
	"github.com/xh-polaris/croply-core/biz/domain/history"
	"github.com/xh-polaris/croply-core/biz/domain/model"
	"github.com/xh-polaris/croply-core/biz/domain/severity"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
	"github.com/xh-polaris/croply-core/biz/infrastructure/mq"
	"github.com/xh-polaris/croply-core/biz/infrastructure/util"
)

// infoFallback 病害信息拉取失败时的降级文案
const infoFallback = "Could not fetch disease info. Check GROQ_API_KEY."

type IDiagnosisService interface {
	Predict(ctx context.Context, filename string, image []byte, plantName, language string) (*dto.PredictResp, error)
}

// DiagnosisService 处理诊断流程
// 识别失败向上抛出, 这是整个核心里唯一向调用方暴露错误的地方
type DiagnosisService struct {
	PredictApp model.PredictApp
	InfoApp    model.InfoApp
	History    *history.Store
	Producer   *mq.ArchiveProducer
}

var DiagnosisServiceSet = wire.NewSet(
	wire.Struct(new(DiagnosisService), "*"),
	wire.Bind(new(IDiagnosisService), new(*DiagnosisService)),
)

func (s *DiagnosisService) Predict(ctx context.Context, filename string, image []byte, plantName, language string) (*dto.PredictResp, error) {
	// 校验图片格式
	imgType, ok := util.SniffImage(image)
	if !ok {
		return nil, consts.ErrInvalidImage
	}
	if language == "" {
		language = consts.DefaultLanguage
	}

	// 模型识别, 失败不建立记录, 不动历史
	pred, err := s.PredictApp.Predict(ctx, image, filename)
	if err != nil {
		log.Error("predict err:", err)
		return nil, consts.ErrPredict
	}

	// 低置信度大概率不是清晰的叶片照片
	if pred.Confidence < consts.ValidLeafThreshold {
		return &dto.PredictResp{
			Filename:    filename,
			ImageType:   imgType,
			IsValidLeaf: false,
			Message:     "The uploaded image does not appear to be a clear leaf photo. Please upload a clear image of a plant leaf.",
			Prediction:  *pred,
		}, nil
	}

	// 病害信息, 失败时降级而不是失败整个诊断
	var d *detail.Detail
	raw, err := s.InfoApp.DiseaseInfo(ctx, pred.Class, language)
	if err != nil {
		log.Error("disease info err:", err)
		d = &detail.Detail{RawFallback: infoFallback}
	} else {
		d = detail.Normalize(raw)
	}

	// 建立记录并头插历史
	name := strings.TrimSpace(plantName)
	if name == "" {
		name = util.PlantFromClass(pred.Class)
	}
	if name == "" {
		name = "Plant"
	}
	rec := &history.Record{
		ID:         s.History.NextID(),
		PlantName:  name,
		Class:      pred.Class,
		Confidence: pred.Confidence,
		Detail:     d,
		Image:      "data:image/" + imgType + ";base64," + base64.StdEncoding.EncodeToString(image),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Language:   language,
	}
	s.History.Insert(rec)

	// 异步归档, 失败只记日志
	if s.Producer != nil {
		if err = s.Producer.Produce(ctx, rec.ID); err != nil {
			log.Error("produce archive err:", err)
		}
	}

	return &dto.PredictResp{
		Filename:    filename,
		ImageType:   imgType,
		IsValidLeaf: true,
		Prediction:  *pred,
		Disease:     d,
		Record:      toItem(rec),
	}, nil
}

// toItem 转外部形态并补上推导的严重程度
func toItem(r *history.Record) *dto.DiagnosisItem {
	return &dto.DiagnosisItem{
		ID:         r.ID,
		PlantName:  r.PlantName,
		Class:      r.Class,
		Confidence: r.Confidence,
		Severity:   severity.Classify(r.Confidence).Meta().Label,
		Detail:     r.Detail,
		Image:      r.Image,
		Timestamp:  r.Timestamp,
		Rating:     r.Rating,
		Language:   r.Language,
	}
}
