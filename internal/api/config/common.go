package config

// Config 配置主体
type Config struct {
	Server               ServerConfig         `mapstructure:"server"`
	DB                   DBConfig             `mapstructure:"database"`
	Redis                RedisConfig          `mapstructure:"redis"`
	Mongo                MongoConfig          `mapstructure:"mongo"`
	Elastic              ElasticConfig        `mapstructure:"elastic"`
	Logstash             LogstashConfig       `mapstructure:"logstash"`
	Push                 PushConfig           `mapstructure:"push"`
	Billing              BillingConfig        `mapstructure:"billing"`
	Kafka                KafkaConfig          `mapstructure:"kafka"`
	KafkaEarningProducer KafkaEarningProducer `mapstructure:"kafka_earning_producer"`
	KafkaEarningConsumer KafkaEarningConsumer `mapstructure:"kafka_earning_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig 消息明细库配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	TransactionIndex string `mapstructure:"transaction_index"`
}

// LogstashConfig 日志上报配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// PushConfig 推送网关配置
type PushConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// BillingConfig 计费与奖励策略
// 所有金额单位均为金币（整数），按发送者会员等级取文本消息单价
type BillingConfig struct {
	MessageCosts      map[string]int64 `mapstructure:"message_costs"`
	HiCost            int64            `mapstructure:"hi_cost"`
	ImageCost         int64            `mapstructure:"image_cost"`
	DailyReward       int64            `mapstructure:"daily_reward"`
	WelcomeCoins      int64            `mapstructure:"welcome_coins"`
	LowBalanceAlert   int64            `mapstructure:"low_balance_alert"`
	RewardTimezone    string           `mapstructure:"reward_timezone"`
	GiftPriceCacheTTL int              `mapstructure:"gift_price_cache_ttl"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaEarningProducer struct {
	Topic string `mapstructure:"topic"`
}

type KafkaEarningConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
