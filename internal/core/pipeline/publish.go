package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/mo"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
)

// MinArticleLength is the shortest article the publication stage accepts.
// Anything below it is assumed to be a fragment or an error marker.
const MinArticleLength = 50

func (p *Pipeline) publish(ctx context.Context, t *task.Task, creds mo.Option[PublisherCredentials]) (task.Patch, error) {
	c, ok := creds.Get()
	if !ok || !c.Complete() {
		return nil, &StageError{
			Stage: StagePublication,
			Err:   fmt.Errorf("%w: publisher endpoint, user and application password are required", ErrPrecondition),
		}
	}

	article := strings.TrimSpace(t.FinalArticle)
	if utf8.RuneCountInString(article) < MinArticleLength {
		return nil, &StageError{
			Stage: StagePublication,
			Err:   fmt.Errorf("%w: article is shorter than %d characters", ErrPrecondition, MinArticleLength),
		}
	}

	post, err := p.publisher.CreateDraft(ctx, c, t.Keyword, t.FinalArticle)
	if err != nil {
		return nil, &StageError{Stage: StagePublication, Err: err}
	}

	return task.Patch{
		task.FieldStatusPublication: task.Done().String(),
		task.FieldPublicationLink:   post.Link,
	}, nil
}
