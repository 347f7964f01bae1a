package es

import (
	"context"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/goccy/go-json"
)

// TransactionES 流水审计文档
type TransactionES struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user_id"`
	Direction      string    `json:"direction"`
	Amount         int64     `json:"amount"`
	BalanceAfter   int64     `json:"balance_after"`
	BizType        string    `json:"biz_type"`
	RelatedUserID  uint64    `json:"related_user_id"`
	ConversationID uint64    `json:"conversation_id"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionQuery 审计检索条件（零值字段不参与过滤）
type TransactionQuery struct {
	UserID    uint64
	Direction string
	BizType   string
	Since     *time.Time
	Until     *time.Time
	From      int
	Size      int
}

type TransactionRepo interface {
	IndexTransaction(ctx context.Context, txn *TransactionES) error
	SearchTransactions(ctx context.Context, query *TransactionQuery) ([]*TransactionES, error)
}

type TransactionRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewTransactionRepo(client *elasticsearch.TypedClient) TransactionRepo {
	return &TransactionRepoImpl{client: client}
}

// IndexTransaction 写入审计索引，以 MySQL 流水 ID 作为文档 ID 保证幂等
func (s *TransactionRepoImpl) IndexTransaction(ctx context.Context, txn *TransactionES) error {
	_, err := s.client.Index(TransactionIndex).
		Id(strconv.FormatUint(txn.ID, 10)).
		Document(txn).
		Do(ctx)
	return err
}

// SearchTransactions 按条件检索流水，按时间倒序
func (s *TransactionRepoImpl) SearchTransactions(ctx context.Context, query *TransactionQuery) ([]*TransactionES, error) {
	boolQuery := &types.BoolQuery{Filter: []types.Query{}}

	if query.UserID > 0 {
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Term: map[string]types.TermQuery{"user_id": {Value: query.UserID}},
		})
	}
	if query.Direction != "" {
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Term: map[string]types.TermQuery{"direction": {Value: query.Direction}},
		})
	}
	if query.BizType != "" {
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Term: map[string]types.TermQuery{"biz_type": {Value: query.BizType}},
		})
	}
	if query.Since != nil || query.Until != nil {
		rangeQuery := types.DateRangeQuery{}
		if query.Since != nil {
			gte := query.Since.Format(time.RFC3339)
			rangeQuery.Gte = &gte
		}
		if query.Until != nil {
			lte := query.Until.Format(time.RFC3339)
			rangeQuery.Lte = &lte
		}
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Range: map[string]types.RangeQuery{"created_at": rangeQuery},
		})
	}

	size := query.Size
	if size <= 0 {
		size = 20
	}

	res, err := s.client.Search().
		Index(TransactionIndex).
		Query(&types.Query{Bool: boolQuery}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		From(query.From).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	txns := make([]*TransactionES, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var txn TransactionES
		if err := json.Unmarshal(hit.Source_, &txn); err != nil {
			return nil, err
		}
		txns = append(txns, &txn)
	}
	return txns, nil
}
