package sqlinline

const QInsertEvent = `--sql 97d28a18-fef2-4e14-bcc4-9874c4b5fa89
insert into events (id, description, date, slug, status, position)
values ($1::uuid, $2::text, $3::date, $4::text, $5::text, $6::int);
`

const QSelectEventByID = `--sql c06c9e54-2d67-44e6-ac6a-ffacd65b42c1
select id, description, date, slug, status, position
from events
where id = $1::uuid
limit 1;
`

const QSelectEventBySlug = `--sql 2f8c955a-69c2-450f-8287-04880a119b55
select id, description, date, slug, status, position
from events
where slug = $1::text
limit 1;
`

const QListEvents = `--sql 059b17b3-15f2-4e2a-be16-825e0ca43a96
select id, description, date, slug, status, position
from events
order by position, id;
`

const QUpdateEvent = `--sql 50f119f2-a4dc-41ac-b664-b61a3e3f4cf7
update events
set description = $2::text,
    date = $3::date,
    slug = $4::text
where id = $1::uuid;
`

const QSetEventStatus = `--sql 3c681fd2-5a87-4dd6-bed7-c1c876bca1fb
update events
set status = $2::text
where id = $1::uuid;
`

const QListEventPositions = `--sql cd18c8b9-1f3c-41f0-9581-4b65cc0f8f37
select id, position
from events
order by position, id
for update;
`

const QUpdateEventPosition = `--sql c2ce5618-b019-42ec-8ec9-5b710f2efb4a
update events
set position = $2::int
where id = $1::uuid;
`

const QCountEventReferences = `--sql 66576859-bfc1-478a-a252-097a9fdb15a4
select
    (select count(*) from photos where event_id = $1::uuid),
    (select count(*) from donations where event_id = $1::uuid);
`

const QDeleteEvent = `--sql ff117dac-967b-4d99-84d9-dd1b904bea73
delete from events
where id = $1::uuid;
`
