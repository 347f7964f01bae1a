package wire

import (
	"Amoria/internal/api"
	"Amoria/internal/api/config"
	"Amoria/internal/api/handler"
	"Amoria/internal/job"
	"Amoria/internal/pkg/cron"
	"Amoria/internal/pkg/es"
	"Amoria/internal/pkg/kafka"
	"Amoria/internal/pkg/push"
	"Amoria/internal/repository"
	"Amoria/internal/service"

	"github.com/gin-gonic/gin"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	appmongo "Amoria/internal/pkg/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router         *gin.Engine
	DB             *gorm.DB
	KafkaManager   *kafka.ConsumerManager
	CronMgr        *cron.Manager
	MessageService service.MessageService
	EarningBatcher service.EarningBatcher
}

func BuildApplication(db *gorm.DB, mongoDB *mongodrv.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	convRepo := repository.NewConversationRepo(db)
	blockRepo := repository.NewBlockRepo(db)
	walletRepo := repository.NewWalletRepo(db)
	txnRepo := repository.NewTransactionRepo(db)
	giftRepo := repository.NewGiftRepo(db)
	messageRepo := appmongo.NewMessageRepo(mongoDB)
	esTxnRepo := es.NewTransactionRepo(es.Client)

	dispatcher := push.NewDispatcher(cfg.Push)

	producer, err := kafka.NewAsyncProducer(cfg)
	if err != nil {
		return nil, err
	}
	batcher := kafka.NewEarningBatcher(producer, cfg)

	userService := service.NewUserService(userRepo)
	pricingService := service.NewPricingService(giftRepo)
	walletService := service.NewWalletService(walletRepo, txnRepo, esTxnRepo)
	rewardService := service.NewRewardService(userRepo, walletRepo, txnRepo, esTxnRepo)
	giftService := service.NewGiftService(giftRepo)
	blockService := service.NewBlockService(userRepo, blockRepo)
	settleService := service.NewEarningSettleService(walletRepo, txnRepo, esTxnRepo)
	messageService := service.NewMessageService(
		userRepo, convRepo, blockRepo, walletRepo, txnRepo, esTxnRepo,
		messageRepo, pricingService, batcher, dispatcher,
	)

	handlers := &api.HandlersGroup{
		UserHandler:   handler.NewUserHandler(userService),
		IMHandler:     handler.NewIMHandler(messageService),
		WSHandler:     handler.NewWsHandler(),
		WalletHandler: handler.NewWalletHandler(walletService),
		RewardHandler: handler.NewRewardHandler(rewardService),
		GiftHandler:   handler.NewGiftHandler(giftService),
		BlockHandler:  handler.NewBlockHandler(blockService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, settleService)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewIntimacyCalibrationJob(convRepo),
		job.NewGiftPriceJob(pricingService),
	)

	return &ApplicationContainer{
		Router:         router,
		DB:             db,
		KafkaManager:   kafkaMgr,
		CronMgr:        cronMgr,
		MessageService: messageService,
		EarningBatcher: batcher,
	}, nil
}
