package driver

const (
	SetStageQuery = `
		MERGE (c:Course {id: $course_id})
		SET c.status = $status
		RETURN c.id AS id
	`

	GetCourseQuery = `
		MATCH (c:Course {id: $course_id})
		RETURN c.status AS status,
			c.kg_nodes AS nodes,
			c.kg_edges AS edges,
			c.kg_data AS data
	`

	SaveGraphQuery = `
		MERGE (c:Course {id: $course_id})
		SET c.kg_nodes = $nodes,
			c.kg_edges = $edges,
			c.kg_data = $data
		RETURN c.id AS id
	`

	RecordEventQuery = `
		CREATE (e:Event {uuid: $uuid, kind: $kind, created_at: $created_at})
		SET e += $fields
		RETURN e.uuid AS uuid
	`

	ListEventsQuery = `
		MATCH (e:Event {kind: $kind, course_id: $course_id})
		RETURN e{.*} AS event
	`

	SaveReportQuery = `
		MERGE (c:Course {id: $course_id})
		SET c.analytics_report = $report
		RETURN c.id AS id
	`

	GetReportQuery = `
		MATCH (c:Course {id: $course_id})
		RETURN c.analytics_report AS report
	`
)
