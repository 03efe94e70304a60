package history

import "database/sql"

const checkColumns = `id, group_name, base_ns, new_ns, base_files, new_files, improvement, threshold, passed, created_at`

const summaryColumns = `id, benchmark, mean_seconds, std_dev_seconds, created_at`

func scanChecks(rows *sql.Rows) ([]CheckRecord, error) {
	defer rows.Close()

	var results []CheckRecord
	for rows.Next() {
		var r CheckRecord
		if err := rows.Scan(&r.ID, &r.Group, &r.BaseNs, &r.NewNs, &r.BaseFiles, &r.NewFiles,
			&r.Improvement, &r.Threshold, &r.Passed, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanSummaries(rows *sql.Rows) ([]SummaryRecord, error) {
	defer rows.Close()

	var results []SummaryRecord
	for rows.Next() {
		var r SummaryRecord
		if err := rows.Scan(&r.ID, &r.Benchmark, &r.MeanSeconds, &r.StdDevSeconds, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
