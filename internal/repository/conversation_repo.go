package repository

import (
	"Amoria/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// SendUpdate 一次发送动作需要落到会话上的全部元数据
type SendUpdate struct {
	SenderID   uint64
	ReceiverID uint64
	Preview    string
	MsgType    int8
	Weight     uint64 // 亲密度计数权重
	CountsPaid bool   // 发送者是否付费方（付费方计数才驱动亲密度）
	SentAt     time.Time
}

type ConversationRepo interface {
	CreateConversation(ctx context.Context, conv *model.Conversation, members []*model.ConversationMember) error
	GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error)
	GetConversationByPeerKey(ctx context.Context, peerKey string) (*model.Conversation, error)
	GetMember(ctx context.Context, convID uint64, userID uint64) (*model.ConversationMember, error)
	IsMember(ctx context.Context, convID uint64, userID uint64) (bool, error)

	// ApplySendUpdates 发送后的会话元数据落库：定序、预览、带权计数、未读数
	// 返回新序号与发送者的最新付费计数（亲密度判定用）
	ApplySendUpdates(ctx context.Context, convID uint64, upd *SendUpdate) (newSeq uint64, newPaidCount uint64, err error)

	// UpdateIntimacyLevel 单调升级：仅当新等级高于当前等级时写入
	UpdateIntimacyLevel(ctx context.Context, convID uint64, level int, at time.Time) (bool, error)

	MarkRead(ctx context.Context, convID, userID, seq uint64) error
	GetUserConversationMemList(ctx context.Context, userID uint64) ([]*model.ConversationMember, error)
	GetTotalUnreadCount(ctx context.Context, userID uint64) (int64, error)
}

type conversationRepoImpl struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepoImpl{db: db}
}

// CreateConversation 开启事务创建会话及初始成员
func (s *conversationRepoImpl) CreateConversation(ctx context.Context, conv *model.Conversation, members []*model.ConversationMember) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, m := range members {
			m.ConversationID = conv.ID
			m.JoinedAt = time.Now()
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetConversation 根据会话 ID 获取会话
func (s *conversationRepoImpl) GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.db.WithContext(ctx).First(&conv, convID).Error
	return &conv, err
}

// GetConversationByPeerKey 根据会话标识获取会话
func (s *conversationRepoImpl) GetConversationByPeerKey(ctx context.Context, peerKey string) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.db.WithContext(ctx).Where("peer_key = ?", peerKey).First(&conv).Error
	return &conv, err
}

// GetMember 获取单个成员记录
func (s *conversationRepoImpl) GetMember(ctx context.Context, convID uint64, userID uint64) (*model.ConversationMember, error) {
	var member model.ConversationMember
	err := s.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// IsMember 检查用户是否是会话成员
func (s *conversationRepoImpl) IsMember(ctx context.Context, convID uint64, userID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Count(&count).Error
	return count > 0, err
}

// ApplySendUpdates 核心定序与计数逻辑
// 所有计数都是纯加法 UPDATE（可交换），并发发送无需会话级锁；
// 付费计数只增不减，它是亲密度的权威数据源。
func (s *conversationRepoImpl) ApplySendUpdates(ctx context.Context, convID uint64, upd *SendUpdate) (uint64, uint64, error) {
	var newSeq uint64
	var newPaidCount uint64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 原子更新序列号、带权总计数与预览信息
		err := tx.Model(&model.Conversation{}).Where("id = ?", convID).
			Updates(map[string]interface{}{
				"max_msg_seq":      gorm.Expr("max_msg_seq + 1"),
				"total_msg_count":  gorm.Expr("total_msg_count + ?", upd.Weight),
				"last_msg_content": upd.Preview,
				"last_msg_type":    upd.MsgType,
				"last_sender_id":   upd.SenderID,
				"last_message_at":  upd.SentAt,
			}).Error
		if err != nil {
			return err
		}

		// 付费方计数自增，驱动亲密度
		if upd.CountsPaid {
			err = tx.Model(&model.ConversationMember{}).
				Where("conversation_id = ? AND user_id = ?", convID, upd.SenderID).
				Update("paid_msg_count", gorm.Expr("paid_msg_count + ?", upd.Weight)).Error
			if err != nil {
				return err
			}
		}

		// 接收方未读数 +1，并唤醒其会话可见性（"删除会话"后自动浮现）
		err = tx.Model(&model.ConversationMember{}).
			Where("conversation_id = ? AND user_id = ?", convID, upd.ReceiverID).
			Updates(map[string]interface{}{
				"unread_count": gorm.Expr("unread_count + 1"),
				"is_visible":   1,
			}).Error
		if err != nil {
			return err
		}

		// 读取并返回自增后的最新值
		err = tx.Model(&model.Conversation{}).Select("max_msg_seq").Where("id = ?", convID).Scan(&newSeq).Error
		if err != nil {
			return err
		}
		return tx.Model(&model.ConversationMember{}).
			Select("paid_msg_count").
			Where("conversation_id = ? AND user_id = ?", convID, upd.SenderID).
			Scan(&newPaidCount).Error
	})
	return newSeq, newPaidCount, err
}

// UpdateIntimacyLevel 带谓词写入，保证等级单调不降
func (s *conversationRepoImpl) UpdateIntimacyLevel(ctx context.Context, convID uint64, level int, at time.Time) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ? AND intimacy_level < ?", convID, level).
		Updates(map[string]interface{}{
			"intimacy_level":   level,
			"last_level_up_at": at,
		})
	return result.RowsAffected > 0, result.Error
}

// MarkRead 更新已读进度并清零未读数
func (s *conversationRepoImpl) MarkRead(ctx context.Context, convID, userID, seq uint64) error {
	return s.db.WithContext(ctx).Model(&model.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Updates(map[string]interface{}{
			"read_msg_seq": seq,
			"unread_count": 0,
		}).Error
}

// GetUserConversationMemList 联表查询，利用嵌套 Model 自动装配
func (s *conversationRepoImpl) GetUserConversationMemList(ctx context.Context, userID uint64) ([]*model.ConversationMember, error) {
	var members []*model.ConversationMember
	// 使用 Conversation__ 别名配合 GORM 的嵌套填充特性
	err := s.db.WithContext(ctx).Table("conversation_members m").
		Select("m.*, "+
			"c.id AS `Conversation__id`, "+
			"c.peer_key AS `Conversation__peer_key`, "+
			"c.max_msg_seq AS `Conversation__max_msg_seq`, "+
			"c.total_msg_count AS `Conversation__total_msg_count`, "+
			"c.intimacy_level AS `Conversation__intimacy_level`, "+
			"c.last_level_up_at AS `Conversation__last_level_up_at`, "+
			"c.last_msg_content AS `Conversation__last_msg_content`, "+
			"c.last_msg_type AS `Conversation__last_msg_type`, "+
			"c.last_sender_id AS `Conversation__last_sender_id`, "+
			"c.last_message_at AS `Conversation__last_message_at`").
		Joins("JOIN conversations c ON m.conversation_id = c.id").
		Where("m.user_id = ? AND m.is_visible = 1", userID).
		Order("c.last_message_at DESC").
		Find(&members).Error
	return members, err
}

// GetTotalUnreadCount 计算全局未读数
func (s *conversationRepoImpl) GetTotalUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.ConversationMember{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(unread_count), 0)").
		Scan(&total).Error
	return total, err
}
