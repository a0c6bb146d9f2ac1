package diagnosis

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xh-polaris/croply-core/biz/domain/detail"
)

// Diagnosis 是归档到Mongo的诊断记录
// 本地历史有界会淘汰, 归档保留全量
type Diagnosis struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RecordID   int64              `bson:"record_id" json:"record_id"`
	PlantName  string             `bson:"plant_name" json:"plant_name"`
	Class      string             `bson:"class" json:"class"`
	Confidence float64            `bson:"confidence" json:"confidence"`
	Detail     *detail.Detail     `bson:"detail,omitempty" json:"detail,omitempty"`
	Language   string             `bson:"language,omitempty" json:"language,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
