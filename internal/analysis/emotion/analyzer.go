package emotion

import (
	"strings"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

// bucket 将一组关键词映射到固定的得分向量。
type bucket struct {
	keywords []string
	scores   model.Scores
}

// keywordBuckets 按优先级排列，第一个命中的桶生效。
var keywordBuckets = []bucket{
	{
		keywords: []string{"mad", "hate", "angry"},
		scores:   model.Scores{Anger: 0.95, Disgust: 0.02, Fear: 0.03, Joy: 0.01, Sadness: 0.04},
	},
	{
		keywords: []string{"disgusted", "disgust"},
		scores:   model.Scores{Anger: 0.02, Disgust: 0.95, Fear: 0.03, Joy: 0.01, Sadness: 0.04},
	},
	{
		keywords: []string{"afraid", "fear"},
		scores:   model.Scores{Anger: 0.03, Disgust: 0.02, Fear: 0.95, Joy: 0.01, Sadness: 0.04},
	},
	{
		keywords: []string{"sad"},
		scores:   model.Scores{Anger: 0.04, Disgust: 0.02, Fear: 0.03, Joy: 0.01, Sadness: 0.95},
	},
	{
		keywords: []string{"glad", "happy", "love"},
		scores:   model.Scores{Anger: 0.01, Disgust: 0.02, Fear: 0.03, Joy: 0.98, Sadness: 0.04},
	},
}

var defaultScores = model.Scores{Anger: 0.05, Disgust: 0.03, Fear: 0.07, Joy: 0.75, Sadness: 0.15}

// Simulate 在分类服务不可用时根据关键词生成确定性的模拟结果。
func Simulate(text string) model.Result {
	result := model.FromScores(match(text))
	result.Simulated = true
	return result
}

func match(text string) model.Scores {
	normalized := strings.ToLower(text)
	for _, b := range keywordBuckets {
		for _, word := range b.keywords {
			if strings.Contains(normalized, word) {
				return b.scores
			}
		}
	}
	return defaultScores
}
