package series

import (
	"context"
	"github.com/cenkalti/backoff"
	"github.com/go-kit/kit/log"
	"github.com/kadaan/linedensity/lib/errors"
	promConfig "github.com/prometheus/common/config"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/model/value"
	"github.com/prometheus/prometheus/prompb"
	"github.com/prometheus/prometheus/promql/parser"
	"github.com/prometheus/prometheus/storage"
	"github.com/prometheus/prometheus/storage/remote"
	"github.com/prometheus/prometheus/tsdb"
	"k8s.io/klog/v2"
	"net/url"
	"sort"
	"time"
)

const (
	remoteReadTimeout = 2 * time.Minute
	remoteReadRetries = 5
)

// Selectors maps metric selector expressions to their parsed matchers.
type Selectors map[string][]*labels.Matcher

func ParseSelectors(expressions []string) (Selectors, error) {
	selectors := make(Selectors, len(expressions))
	for _, s := range expressions {
		matchers, err := parser.ParseMetricSelector(s)
		if err != nil {
			return nil, errors.NewConfigError("failed to parse matcher %q: %v", s, err)
		}
		selectors[s] = matchers
	}
	return selectors, nil
}

func (s Selectors) sortedExpressions() []string {
	expressions := make([]string, 0, len(s))
	for e := range s {
		expressions = append(expressions, e)
	}
	sort.Strings(expressions)
	return expressions
}

// LoadTSDB reads every series matching the selectors from a local TSDB
// directory in [start, end], timestamps in milliseconds. At most count
// series are returned; stale markers are dropped.
func LoadTSDB(ctx context.Context, dir string, selectors Selectors, start int64, end int64, count int) ([]Raw, error) {
	db, err := tsdb.OpenDBReadOnly(dir, log.NewNopLogger())
	if err != nil {
		return nil, errors.WrapDataError(err, "failed to open tsdb %s", dir)
	}
	defer func(db *tsdb.DBReadOnly) {
		_ = db.Close()
	}(db)

	q, err := db.Querier(ctx, start, end)
	if err != nil {
		return nil, errors.WrapDataError(err, "failed to query tsdb %s", dir)
	}
	defer func(q storage.Querier) {
		_ = q.Close()
	}(q)

	var raws []Raw
	for _, expression := range selectors.sortedExpressions() {
		ss := q.Select(true, nil, selectors[expression]...)
		for ss.Next() && len(raws) < count {
			s := ss.At()
			raw := Raw{Name: s.Labels().String()}
			it := s.Iterator()
			for it.Next() {
				t, v := it.At()
				if value.IsStaleNaN(v) {
					continue
				}
				raw.Points = append(raw.Points, Point{T: float64(t), V: v})
			}
			if err := it.Err(); err != nil {
				return nil, errors.WrapDataError(err, "failed to iterate %s", raw.Name)
			}
			raws = append(raws, raw)
			klog.V(2).Infof("Loaded %d samples for %s", len(raw.Points), raw.Name)
		}
		if err := ss.Err(); err != nil {
			return nil, errors.WrapDataError(err, "failed to select %s", expression)
		}
	}
	if len(raws) < count {
		return nil, errors.NewDataError("tsdb %s has %d matching series, need %d", dir, len(raws), count)
	}
	return raws, nil
}

// LoadRemote reads every series matching the selectors through the
// Prometheus remote read API. Reads are retried with exponential backoff.
func LoadRemote(ctx context.Context, readURL *url.URL, selectors Selectors, start int64, end int64, count int) ([]Raw, error) {
	clientConfig := &remote.ClientConfig{
		URL:              &promConfig.URL{URL: readURL},
		Timeout:          model.Duration(remoteReadTimeout),
		HTTPClientConfig: promConfig.HTTPClientConfig{},
		RetryOnRateLimit: true,
	}
	client, err := remote.NewReadClient("linedensity", clientConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create remote client")
	}

	var raws []Raw
	for _, expression := range selectors.sortedExpressions() {
		hints := &storage.SelectHints{
			Start: start,
			End:   end,
		}
		query, err := remote.ToQuery(start, end, selectors[expression], hints)
		if err != nil {
			return nil, errors.Wrap(err, "could not create query for %s", expression)
		}

		var res *prompb.QueryResult
		err = backoff.Retry(func() error {
			r, e := client.Read(ctx, query)
			if e != nil {
				klog.V(1).Infof("Remote read of %s failed: %v", expression, e)
				return e
			}
			res = r
			return nil
		}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), remoteReadRetries), ctx))
		if err != nil {
			return nil, errors.WrapDataError(err, "could not read %s from %s", expression, readURL)
		}

		for _, ts := range res.Timeseries {
			if len(raws) >= count {
				break
			}
			raw := Raw{Name: labelProtosToLabels(ts.Labels).String()}
			for _, s := range ts.Samples {
				if value.IsStaleNaN(s.Value) || s.Timestamp < start {
					continue
				}
				raw.Points = append(raw.Points, Point{T: float64(s.Timestamp), V: s.Value})
			}
			raws = append(raws, raw)
		}
	}
	if len(raws) < count {
		return nil, errors.NewDataError("remote read returned %d matching series, need %d", len(raws), count)
	}
	return raws, nil
}

func labelProtosToLabels(labelPairs []prompb.Label) labels.Labels {
	result := make(labels.Labels, 0, len(labelPairs))
	for _, l := range labelPairs {
		result = append(result, labels.Label{
			Name:  l.Name,
			Value: l.Value,
		})
	}
	sort.Sort(result)
	return result
}
